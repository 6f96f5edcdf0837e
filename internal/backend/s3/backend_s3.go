// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	"github.com/kbctl/kbctl/internal/document"
)

// API is the subset of the S3 client the backend uses.
type API interface {
	ListObjectsV2(ctx context.Context, params *s3v2.ListObjectsV2Input, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error)
	HeadObject(ctx context.Context, params *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// BackendS3 serves pre-rendered documents stored as
// <prefix>/<keyboard>/keymaps/<keymap>.json.
type BackendS3 struct {
	Ctx      context.Context
	Cmd      *cli.Command
	Bucket   string
	Prefix   string
	Region   string
	Profile  string
	Endpoint string
	Client   API
}

const (
	keymapsSegment = "/keymaps/"
	documentSuffix = ".json"
)

// Keyboards lists every keyboard that has at least one keymap document.
func (be *BackendS3) Keyboards(ctx context.Context) ([]string, error) {
	keys, err := be.list(ctx, be.base())
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var keyboards []string
	for _, key := range keys {
		rest := strings.TrimPrefix(key, be.base())
		i := strings.LastIndex(rest, keymapsSegment)
		if i <= 0 || !isDocumentName(rest[i+len(keymapsSegment):]) {
			log.Debugf("Throwing away %s", key)
			continue
		}
		kb := rest[:i]
		if !seen[kb] {
			seen[kb] = true
			keyboards = append(keyboards, kb)
		}
	}

	sort.Strings(keyboards)
	return keyboards, nil
}

// Keymaps lists the keymap documents stored for keyboard.
func (be *BackendS3) Keymaps(ctx context.Context, keyboard string) ([]string, error) {
	prefix := be.base() + keyboard + keymapsSegment
	keys, err := be.list(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var keymaps []string
	for _, key := range keys {
		name := strings.TrimPrefix(key, prefix)
		if !isDocumentName(name) {
			continue
		}
		keymaps = append(keymaps, strings.TrimSuffix(name, documentSuffix))
	}

	sort.Strings(keymaps)
	return keymaps, nil
}

// KeymapExists probes for the keymap document with HeadObject.
func (be *BackendS3) KeymapExists(ctx context.Context, keyboard, keymap string) (string, bool) {
	_, err := be.Client.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(be.Bucket),
		Key:    awsv2.String(be.objectKey(keyboard, keymap)),
	})
	if err != nil {
		log.Debugf("head %s: %v", be.objectKey(keyboard, keymap), err)
		return "", false
	}
	return keyboard, true
}

// Document fetches and parses the keymap document.
func (be *BackendS3) Document(ctx context.Context, keyboard, keymap string) (document.Document, error) {
	key := be.objectKey(keyboard, keymap)
	result, err := be.Client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(be.Bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to get S3 object %s: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	doc, err := document.Parse(data)
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return doc, nil
}

func (be *BackendS3) String() string {
	return "s3://" + path.Join(be.Bucket, be.Prefix)
}

func (be *BackendS3) Type() (string, error) {
	return "s3", nil
}

// base is the key prefix every keyboard lives under, with a trailing slash
// unless it is empty.
func (be *BackendS3) base() string {
	if be.Prefix == "" {
		return ""
	}
	return be.Prefix + "/"
}

func (be *BackendS3) objectKey(keyboard, keymap string) string {
	return be.base() + keyboard + keymapsSegment + keymap + documentSuffix
}

// list pages through every key under prefix.
func (be *BackendS3) list(ctx context.Context, prefix string) ([]string, error) {
	paginator := s3v2.NewListObjectsV2Paginator(be.Client, &s3v2.ListObjectsV2Input{
		Bucket: awsv2.String(be.Bucket),
		Prefix: awsv2.String(prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}

// isDocumentName reports whether name is "<keymap>.json" with no further
// path segments.
func isDocumentName(name string) bool {
	return strings.HasSuffix(name, documentSuffix) &&
		len(name) > len(documentSuffix) &&
		!strings.Contains(name, "/")
}
