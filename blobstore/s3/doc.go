// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Reads stream the object body; writes go through the S3 transfer manager so
// large dataset shards are uploaded in parallel parts.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	bs := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "antismash/v4/")
package s3
