/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores
 * and retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Cache objects store and retrieve data using Amazon S3. Entries are always
// gzip compressed at rest.
type Cache struct {
	client *s3.Client
	bucket string

	// The context to specify when initiating s3 requests
	ctx context.Context
}

// New returns a Cache with underlying storage in the named Amazon S3 bucket.
// Credentials come from the default AWS configuration sources (environment
// variables, shared config/credentials files). Bucket access is verified
// before the Cache is returned.
func New(ctx context.Context, bucket string) (*Cache, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3cache: failed to load AWS config: %w", err)
	}

	c := &Cache{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		ctx:    ctx,
	}

	// Permission check: verify bucket exists and is accessible
	if _, err = c.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		return nil, fmt.Errorf("s3cache: head bucket failed for %s: %w",
			bucket, err)
	}

	return c, nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(key)),
	}

	resp, err := c.client.GetObject(c.ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		// no such key just indicates a cache miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			log.Printf("s3cache.get: failed to get object %v%v: %v",
				c.bucket, *input.Key, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	gzr, err := gzip.NewReader(resp.Body)
	if err != nil {
		log.Printf("s3cache.get: failed to open compressed object %v%v: %v",
			c.bucket, *input.Key, err)
		return nil, false
	}
	defer gzr.Close()

	data, err := io.ReadAll(gzr)
	if err != nil {
		log.Printf("s3cache.get: failed to read object %v%v: %v", c.bucket,
			*input.Key, err)
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	if _, err := gzw.Write(data); err != nil {
		log.Printf("s3cache.set: failed to gzip data for %v: %v", key, err)
		return
	}
	if err := gzw.Close(); err != nil {
		log.Printf("s3cache.set: failed to close gzip writer for %v: %v",
			key, err)
		return
	}

	input := &s3.PutObjectInput{
		Bucket:          aws.String(c.bucket),
		Key:             aws.String(objectKey(key)),
		Body:            &buf,
		ContentEncoding: aws.String("gzip"),
	}

	if _, err := c.client.PutObject(c.ctx, input); err != nil {
		log.Printf("s3cache.set: put failed for %v%v: %v", c.bucket,
			*input.Key, err)
	}
}

func (c *Cache) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(key)),
	}

	if _, err := c.client.DeleteObject(c.ctx, input); err != nil {
		log.Printf("s3cache.delete: delete failed: %v", err)
	}
}

func objectKey(key string) string {
	const pathPrefix = "s3cache"

	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("/%v/%v.gz", pathPrefix, hex.EncodeToString(sum[:]))
}
