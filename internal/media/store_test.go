package media

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestStoreListingImage(t *testing.T) {
	client := &fakeS3{}
	store := NewStore(client, "farmfast-images", "ap-south-1", nil)

	url, err := store.StoreListingImage(context.Background(), "+919876543210", "lst-42", []byte{0xff, 0xd8}, "image/jpeg")
	require.NoError(t, err)

	require.NotNil(t, client.input)
	assert.Equal(t, "farmfast-images", *client.input.Bucket)
	assert.Equal(t, "produce-images/919876543210/lst-42.jpg", *client.input.Key)
	assert.Equal(t, "image/jpeg", *client.input.ContentType)
	assert.Equal(t, "https://farmfast-images.s3.ap-south-1.amazonaws.com/produce-images/919876543210/lst-42.jpg", url)
}

func TestStoreListingImageNotConfigured(t *testing.T) {
	store := NewStore(nil, "", "ap-south-1", nil)
	assert.False(t, store.Enabled())

	_, err := store.StoreListingImage(context.Background(), "+919876543210", "lst-1", nil, "")
	assert.Error(t, err)
}
