package main

import (
	"fmt"
	"os"

	"TrainingLog/config"
	"TrainingLog/pkg/util"
)

// 本地调试用：为指定用户签发访问令牌
// 用法: go run ./cmd/gen_token <userId>
func main() {
	if len(os.Args) < 2 {
		fmt.Println("用法: gen_token <userId>")
		os.Exit(2)
	}
	userID := os.Args[1]

	// 与服务使用同一份配置，保证密钥和签发方一致
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	util.InitJWT(cfg.JWT)

	token, err := util.GenerateToken(userID)
	if err != nil {
		fmt.Printf("签发失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("用户: %s\n", userID)
	fmt.Printf("有效期: %s\n", cfg.JWT.TTL)
	fmt.Printf("Authorization: Bearer %s\n", token)
}
