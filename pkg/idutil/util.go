package idutil

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	nodeID   int64 = 1
)

// SetNode changes the snowflake node of this process. It must be called
// before the first NewID call.
func SetNode(id int64) {
	nodeID = id
}

// NewID returns a snowflake id. Ids generated by one node are increasing.
func NewID() int64 {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
	})

	return node.Generate().Int64()
}
