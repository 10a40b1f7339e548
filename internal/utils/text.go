package utils

import "strings"

// Fold 将字符串归一化为小写，查询两侧都先经过它再比较
// 不使用正则，避免用户输入中的特殊字符被当作模式
func Fold(s string) string {
	return strings.ToLower(s)
}

// EqualFold 归一化后的等值比较
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold 归一化后的子串匹配
func ContainsFold(s, sub string) bool {
	return strings.Contains(Fold(s), Fold(sub))
}
