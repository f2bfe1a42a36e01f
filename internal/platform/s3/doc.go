// Package s3 uploads synthesized cloud assemblies to Amazon S3 or an
// S3-compatible object store.
//
// Each publish lands under <prefix>/<app>/<timestamp>/ and is followed by a
// small "latest" pointer object, so a separate deploy account can always find
// the most recent assembly without listing the bucket.
package s3
