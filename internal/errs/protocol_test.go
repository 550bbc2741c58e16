package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProtocol(t *testing.T) {
	assert.True(t, IsProtocol(fmt.Errorf("replay x: %w", ShortBody)))
	assert.True(t, IsProtocol(UnexpectedEOF))
	assert.False(t, IsProtocol(EntryNotFound))
	assert.False(t, IsProtocol(errors.New("connection refused")))
	assert.False(t, IsProtocol(nil))
}
