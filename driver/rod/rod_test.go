package rod

import (
	"testing"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"

	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Run("stale", func(t *testing.T) {
		for _, msg := range []string{
			"{-32000 Cannot find context with specified id }",
			"{-32000 Could not find object with given id }",
			"{-32000 Node is detached from document }",
		} {
			assert.True(t, driver.IsStale(classify(errors.New(msg))), msg)
		}
	})

	t.Run("other", func(t *testing.T) {
		assert.Equal(t, assert.AnError, classify(assert.AnError))
		assert.NoError(t, classify(nil))
	})
}

func TestCenter(t *testing.T) {
	// given
	quad := proto.DOMQuad{10, 20, 110, 20, 110, 60, 10, 60}

	// when
	c := center(quad)

	// then
	assert.Equal(t, proto.Point{X: 60, Y: 40}, c)
}
