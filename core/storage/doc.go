// Package storage shares translation artifacts through an S3-compatible bucket.
//
// Client is the subset of the MinIO client the tool needs; mocks.Client implements it for
// tests. Publish uploads local files under <prefix>/<base name>, creating the bucket on first
// use. Fetch downloads them back, replacing each local file atomically, and reports artifacts
// that have no object instead of failing.
//
//	client, err := storage.NewClient(cfg.Storage)
//	keys, err := storage.Publish(ctx, client, cfg.Storage.Bucket, cfg.Storage.Prefix,
//	    []storage.Artifact{storage.NewArtifact("strings.txt")}, nil)
package storage
