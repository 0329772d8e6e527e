// Command nethex 在指定网卡上发送并接收原始链路层帧，以十六进制视图输出。
//
//	nethex [flags] <interface> [hexbytes]
//	nethex --list
package main

import "os"

func main() {
	os.Exit(newApp(os.Stdout, os.Stderr).run(os.Args[1:]))
}
