package objstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()

	store, err := newLocalStore(filepath.Join(t.TempDir(), "uploads"), "http://localhost:8080")
	if err != nil {
		t.Fatalf("newLocalStore: %v", err)
	}

	return store
}

// TestLocalStoreRoundTrip 写入、列举、删除一条完整链路.
func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	key := "collections/col-1/abc.png"
	payload := []byte("png-bytes")

	if err := store.Store(ctx, key, bytes.NewReader(payload), int64(len(payload)), "image/png"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.BaseDir(), "collections", "col-1", "abc.png"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}

	if !bytes.Equal(data, payload) {
		t.Errorf("stored bytes = %q", data)
	}

	infos, err := store.List(ctx, "collections/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(infos) != 1 || infos[0].Key != key || infos[0].Size != int64(len(payload)) {
		t.Errorf("infos = %+v", infos)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// 不存在的对象删除视为成功
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("repeated Delete: %v", err)
	}

	infos, err = store.List(ctx, "collections/")
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}

	if len(infos) != 0 {
		t.Errorf("infos after delete = %+v", infos)
	}
}

// TestLocalStoreSignedDownloadURL 存在的对象返回公开路径，缺失返回 ErrObjectNotFound.
func TestLocalStoreSignedDownloadURL(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	key := "collections/col-1/a.jpg"
	if err := store.Store(ctx, key, strings.NewReader("x"), 1, "image/jpeg"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	url, err := store.SignedDownloadURL(ctx, key, time.Hour)
	if err != nil {
		t.Fatalf("SignedDownloadURL: %v", err)
	}

	if url != "http://localhost:8080/uploads/"+key {
		t.Errorf("url = %q", url)
	}

	_, err = store.SignedDownloadURL(ctx, "collections/col-1/missing.jpg", time.Hour)
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("missing object: got %v", err)
	}
}

// TestLocalStoreContainsTraversal 目录穿越 key 被限制在存储根目录内.
func TestLocalStoreContainsTraversal(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	if err := store.Store(ctx, "../outside.txt", strings.NewReader("x"), 1, "text/plain"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	parent := filepath.Dir(store.BaseDir())
	if _, err := os.Stat(filepath.Join(parent, "outside.txt")); err == nil {
		t.Error("object escaped the storage root")
	}

	if _, err := os.Stat(filepath.Join(store.BaseDir(), "outside.txt")); err != nil {
		t.Errorf("object should land inside the storage root: %v", err)
	}
}

// TestLocalStoreStoreFailureCleansUp 读取失败时不残留半成品文件.
func TestLocalStoreStoreFailureCleansUp(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	key := "collections/col-1/broken.png"

	err := store.Store(ctx, key, &failReader{}, -1, "image/png")
	if err == nil {
		t.Fatal("Store should propagate reader failure")
	}

	if _, err := os.Stat(filepath.Join(store.BaseDir(), "collections", "col-1", "broken.png")); err == nil {
		t.Error("partial file should be removed")
	}
}

type failReader struct{}

func (*failReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
