// cmd/coinops/main.go

// coinops 提供帳戶建立、登入、查詢餘額與轉帳。
// 預設啟動互動式終端機選單；serve 子命令改以 JSON HTTP API 提供相同功能。
// 帳本只存在於記憶體中，程式結束即消失。
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
