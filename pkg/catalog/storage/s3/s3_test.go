package s3

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "products/p1/a.jpg", ObjectKey("products", "p1", "a.jpg"))
}

func TestUniqueFilename(t *testing.T) {
	now := time.Unix(1700000000, 123)

	t.Run("PrefixesTimestamp", func(t *testing.T) {
		name := UniqueFilename("photo.jpg", now)
		assert.Equal(t, "1700000000000000123_photo.jpg", name)
	})

	t.Run("StripsDirectories", func(t *testing.T) {
		name := UniqueFilename("../../etc/passwd.png", now)
		assert.Equal(t, "1700000000000000123_passwd.png", name)

		name = UniqueFilename(`C:\Users\me\pic.gif`, now)
		assert.Equal(t, "1700000000000000123_pic.gif", name)
	})

	t.Run("EmptyName", func(t *testing.T) {
		name := UniqueFilename("", now)
		assert.Equal(t, "1700000000000000123_file", name)
	})
}

func TestFilenameFromURL(t *testing.T) {
	t.Run("PlainURL", func(t *testing.T) {
		name, err := FilenameFromURL("https://bucket.s3.us-east-1.amazonaws.com/products/p1/123_photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, "123_photo.jpg", name)
	})

	t.Run("EncodedPath", func(t *testing.T) {
		name, err := FilenameFromURL("https://cdn.example.com/products/p1/123_my%20photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, "123_my photo.jpg", name)
	})

	t.Run("NoFilename", func(t *testing.T) {
		_, err := FilenameFromURL("https://cdn.example.com/")
		assert.Error(t, err)
	})
}

func TestPublicBaseURL(t *testing.T) {
	t.Run("ExplicitOverride", func(t *testing.T) {
		url := publicBaseURL(Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"})
		assert.Equal(t, "https://cdn.example.com", url)
	})

	t.Run("PathStyleEndpoint", func(t *testing.T) {
		url := publicBaseURL(Config{Bucket: "b", Endpoint: "http://localhost:9000", UsePathStyle: true})
		assert.Equal(t, "http://localhost:9000/b", url)
	})

	t.Run("VirtualHostEndpoint", func(t *testing.T) {
		url := publicBaseURL(Config{Bucket: "b", Endpoint: "https://storage.example.com"})
		assert.Equal(t, "https://b.storage.example.com", url)
	})

	t.Run("CanonicalS3", func(t *testing.T) {
		url := publicBaseURL(Config{Bucket: "b", Region: "eu-west-1"})
		assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com", url)
	})
}
