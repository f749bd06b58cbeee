package common

import (
	"math/rand"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(rand.Int63n(1023))
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a snowflake int64 id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake id in base58 string form.
func UUID() string {
	return snowflakeNode.Generate().Base58()
}
