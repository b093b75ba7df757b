package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_bestCandidate(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(NoTarget, bestCandidate(map[int]int{}), "nobody voted")
	assert.Equal(NoTarget, bestCandidate(map[int]int{0: 3, 1: 3, 2: 1}), "tie at max")
	assert.Equal(0, bestCandidate(map[int]int{0: 3, 1: 1}))
	assert.Equal(2, bestCandidate(map[int]int{0: 3, 1: 3, 2: 4}), "tie below max doesn't matter")
	assert.Equal(1, bestCandidate(map[int]int{1: 1}))

	for i := 0; i < 50; i++ { // map iteration order is random
		assert.Equal(NoTarget, bestCandidate(map[int]int{4: 2, 5: 2, 6: 2, 7: 1}))
	}
}

func Test_verdict(t *testing.T) {
	assert := assert.New(t)

	assert.True(verdict(map[int]bool{0: true, 1: true, 2: true, 3: false, 4: false}), "3 of 5 is guilty")
	assert.False(verdict(map[int]bool{0: true, 1: true, 2: false, 3: false}), "2 of 4 is innocent")
	assert.True(verdict(map[int]bool{0: true, 1: true, 2: true, 3: false}))
	assert.False(verdict(map[int]bool{0: false}))
	assert.False(verdict(map[int]bool{}), "nobody judged")
}
