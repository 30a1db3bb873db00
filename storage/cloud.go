package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/janelia-flyem/downsample/dvid"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/gcsblob"
	"gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcp"
)

var (
	memMu      sync.Mutex
	memBuckets = make(map[string]*blob.Bucket)
)

// splitRef splits "<bucket>/<path>" into the bucket name and a key prefix ending
// in "/" or empty.
func splitRef(ref string) (name, prefix string) {
	parts := strings.SplitN(ref, "/", 2)
	name = parts[0]
	if len(parts) == 2 {
		prefix = strings.Trim(parts[1], "/")
		if prefix != "" {
			prefix += "/"
		}
	}
	return
}

func prefixed(bucket *blob.Bucket, prefix string) *blob.Bucket {
	if prefix == "" {
		return bucket
	}
	return blob.PrefixedBucket(bucket, prefix)
}

// OpenBucket returns a blob.Bucket for the given reference.
// The reference should be of the form:
//
//	gs://<bucketname>/<path>
//	s3://<bucketname>/<path>
//	vast://<endpoint>/<bucketname>/<path>
//	mem://<name>/<path>
//	file:///<directory>
//	<directory>
//
// Buckets with the same mem:// name share contents for the life of the process.
func OpenBucket(ctx context.Context, ref string) (bucket *blob.Bucket, err error) {
	switch {
	case strings.HasPrefix(ref, "s3://"):
		// This relies on the non-GCS-specific blob API and requires that the user:
		// A: Have set up AWS credentials in ways gocloud can find them (see the "aws config" command)
		// B: Have set the AWS_REGION environment variable (usually to us-east-2)
		name, prefix := splitRef(strings.TrimPrefix(ref, "s3://"))
		if bucket, err = blob.OpenBucket(ctx, "s3://"+name); err != nil {
			return nil, dvid.IOError(err, "can't open bucket reference @ %q", ref)
		}
		return prefixed(bucket, prefix), nil

	case strings.HasPrefix(ref, "vast://"):
		// VAST S3-compatible storage.  AWS_REGION must be set but is ignored, and
		// AWS_SHARED_CREDENTIALS_FILE should point to a file of the form:
		//	 [default]
		//	 aws_access_key_id = <access key>
		//	 aws_secret_access_key = <secret key>
		parts := strings.SplitN(strings.TrimPrefix(ref, "vast://"), "/", 2)
		if len(parts) != 2 {
			return nil, dvid.ArgumentError("vast ref must be of form 'vast://<endpoint>/<bucket>'")
		}
		name, prefix := splitRef(parts[1])
		url := fmt.Sprintf("s3://%s?endpoint=%s&s3ForcePathStyle=true", name, parts[0])
		if bucket, err = blob.OpenBucket(ctx, url); err != nil {
			return nil, dvid.IOError(err, "can't open bucket reference @ %q", ref)
		}
		return prefixed(bucket, prefix), nil

	case strings.HasPrefix(ref, "gs://"):
		// Google Store authentication.  See https://cloud.google.com/docs/authentication/production
		// for alternatives.
		name, prefix := splitRef(strings.TrimPrefix(ref, "gs://"))
		creds, err := gcp.DefaultCredentials(ctx)
		if err != nil {
			return nil, dvid.IOError(err, "no google credentials for %q", ref)
		}
		client, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
		if err != nil {
			return nil, dvid.IOError(err, "can't create http client for %q", ref)
		}
		if bucket, err = gcsblob.OpenBucket(ctx, client, name, nil); err != nil {
			return nil, dvid.IOError(err, "can't open bucket reference @ %q", ref)
		}
		return prefixed(bucket, prefix), nil

	case strings.HasPrefix(ref, "mem://"):
		name, prefix := splitRef(strings.TrimPrefix(ref, "mem://"))
		memMu.Lock()
		base, found := memBuckets[name]
		if !found {
			base = memblob.OpenBucket(nil)
			memBuckets[name] = base
		}
		memMu.Unlock()
		// Wrapping keeps Close on the returned bucket from closing the shared one.
		return blob.PrefixedBucket(base, prefix), nil

	default:
		dir := strings.TrimPrefix(ref, "file://")
		if dir == "" {
			return nil, dvid.ArgumentError("empty bucket reference")
		}
		if dir, err = filepath.Abs(dir); err != nil {
			return nil, dvid.IOError(err, "bad directory %q", ref)
		}
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, dvid.IOError(err, "can't create directory %q", dir)
		}
		if bucket, err = fileblob.OpenBucket(dir, nil); err != nil {
			return nil, dvid.IOError(err, "can't open directory %q", dir)
		}
		return bucket, nil
	}
}
