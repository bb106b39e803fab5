package s3

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "/media/cats/images/a.png", NewWithClient(nil, "b", "").URL("cats/images/a.png"))
	assert.Equal(t, "https://bucket.example.com/cats/images/a.png", NewWithClient(nil, "b", "https://bucket.example.com").URL("/cats/images/a.png"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", &types.NotFound{})))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFound(fmt.Errorf("boom")))
}
