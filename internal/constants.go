/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "boylstonchessclub-ratings/0.3.0 (+https://github.com/mikeb26/boylstonchessclub-ratings)"
	WebCacheBucket = "bopmatic-boylstonchessclub-ratings-prod-webcache"

	// WebCacheBucketEnvVar overrides WebCacheBucket when set; set it to an
	// empty string to disable the S3 backed cache entirely.
	WebCacheBucketEnvVar = "BCC_RATINGS_CACHE_BUCKET"
)
