// Package lifecycle 培训与每日排课的生命周期规则。
//
// 包内均为纯函数/纯数据结构，不访问存储、不持有全局状态：
//   - GroupByWeek:        扁平的每日记录 → 按周分组（组内、组间均按日期升序）
//   - EditPermission:     单日记录在“今天”是否可编辑及占位提示
//   - ApplyAttendance 等: 出勤变更及其对描述字段的联动
//   - Approve / Assign:   培训状态机
//   - StatusChangeSet:    待提交的培训状态变更集合
//   - Workflow:           用户账号审批、编辑申请审批两套审批状态机
//   - Navigator:          周分页游标
//
// 存储、鉴权、HTTP 均由 service / repository / api 层负责。
package lifecycle
