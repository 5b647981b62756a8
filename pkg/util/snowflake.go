package util

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	snowflakeOnce sync.Once
	snowflakeNode *snowflake.Node
	snowflakeErr  error
)

// InitSnowflake 初始化雪花节点（节点号 0~1023），只生效一次。
// 未显式初始化时 NextID 使用节点 1。
func InitSnowflake(node int64) error {
	snowflakeOnce.Do(func() {
		snowflakeNode, snowflakeErr = snowflake.NewNode(node)
	})
	return snowflakeErr
}

// NextID 生成全局唯一的 int64 id
func NextID() int64 {
	if err := InitSnowflake(1); err != nil {
		panic(err)
	}
	return snowflakeNode.Generate().Int64()
}
