package idgen

import (
	"log"
	"os"
	"strconv"
)

// Init 初始化默认节点，nodeID 作为兜底值
func Init(nodeID int64) {
	if s := os.Getenv("SNOWFLAKE_NODE_ID"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 0 || id > 1023 {
			log.Fatalf("[IDGen] Invalid SNOWFLAKE_NODE_ID: %v", s)
		}
		nodeID = id
	}
	if err := InitNode("default", nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode failed: %v", err)
	}
	log.Printf("[IDGen] Snowflake node initialized: nodeID=%d", nodeID)
}
