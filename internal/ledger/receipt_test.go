package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindOne(t *testing.T) {
	receipt := &Receipt{
		TxHash: "0xabc",
		Events: []Event{
			ProductAdded{ProductID: 1, Name: "Sencha", BatchNo: 2},
			ProductStageUpdated{ProductID: 1, Stage: 0, Remark: "Product checked in"},
		},
	}

	added, ok := FindOne[ProductAdded](receipt)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), added.ProductID)

	updated, ok := FindOne[ProductStageUpdated](receipt)
	assert.True(t, ok)
	assert.Equal(t, "Product checked in", updated.Remark)
}

func TestFindOneAbsent(t *testing.T) {
	receipt := &Receipt{TxHash: "0xabc"}

	_, ok := FindOne[BatchCreated](receipt)
	assert.False(t, ok)
}

func TestFindOneAmbiguous(t *testing.T) {
	receipt := &Receipt{
		TxHash: "0xabc",
		Events: []Event{
			BatchCreated{BatchID: 1, Name: "a"},
			BatchCreated{BatchID: 2, Name: "b"},
		},
	}

	_, ok := FindOne[BatchCreated](receipt)
	assert.False(t, ok, "duplicate confirming events cannot confirm the write")
}
