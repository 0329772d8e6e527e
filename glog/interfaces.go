package glog

// 编译期断言，确保 zapLogger 满足对外暴露的接口。
var (
	_ Logger  = (*zapLogger)(nil)
	_ GLogger = (*zapLogger)(nil)
)
