package errors

import "errors"

// ErrDuplicateKey 唯一约束冲突：同一 (日期, 时间段) 已存在记录。
// 由 Repository 层在插入时翻译，业务层据此返回槽位冲突错误，
// 原始数据库错误不跨出持久化边界。
var ErrDuplicateKey = errors.New("记录已存在，唯一约束冲突")

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
