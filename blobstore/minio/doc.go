// Package minio stores population checkpoints in MinIO or any other
// S3-compatible object store (Ceph, SeaweedFS, Garage) through minio-go.
//
// Open fetches the whole object, since checkpoints are always decoded in
// full. Put is a single PutObject with Content-MD5.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "lcs", "populations/")
//	sys, err := lcsgo.New(rep, lcsgo.WithBlobStore(store))
package minio
