// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "populations/")
//
// Multiple writers committing checkpoints should wrap the store in a
// CommitStore, which keeps the CURRENT pointer in DynamoDB:
//
//	commits := s3.NewCommitStore(store, dynamodb.NewFromConfig(cfg), "lcs-commits", store.URI())
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads through the feature/s3/manager uploader
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
