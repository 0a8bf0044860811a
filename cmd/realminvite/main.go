// Package main 提供 realminvite 命令行入口
//
// 子命令：
//
//	realminvite build --community community.json [--version v2]
//	realminvite parse <link>
//	realminvite rank --community community.json
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
