package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/apperr"
	"github.com/yeisme/photovault/pkg/internal/model"
	dbc "github.com/yeisme/photovault/pkg/internal/storage/db"
	"github.com/yeisme/photovault/pkg/internal/storage/objstore"
	"github.com/yeisme/photovault/pkg/internal/types"
)

// fakeObjectStore 内存对象存储，支持注入失败.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	failStore  bool
	failDelete bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.failStore {
		return errors.New("store failed")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data

	return nil
}

func (f *fakeObjectStore) SignedDownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.objects[key]; !ok {
		return "", objstore.ErrObjectNotFound
	}

	return "https://signed.test/" + key, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errors.New("delete failed")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)

	return nil
}

func (f *fakeObjectStore) List(ctx context.Context, prefix string) ([]objstore.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var infos []objstore.ObjectInfo
	for k, v := range f.objects {
		infos = append(infos, objstore.ObjectInfo{Key: k, Size: int64(len(v))})
	}

	return infos, nil
}

func (f *fakeObjectStore) HealthCheck(ctx context.Context) error { return nil }

func (f *fakeObjectStore) Close() error { return nil }

func (f *fakeObjectStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.objects[key]

	return ok
}

func (f *fakeObjectStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.objects)
}

// testEnv 聚合测试用的服务实例与依赖.
type testEnv struct {
	db    *gorm.DB
	store *fakeObjectStore

	images      *ImageService
	collections *CollectionService
	users       *UserService
	auth        *AuthService
	analytics   *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库每个连接各自独立，必须限制为单连接
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := model.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := newFakeObjectStore()
	cl := clients{
		db:  &dbc.Client{DB: gdb},
		obj: &objstore.Client{ObjectStore: store},
	}

	analytics := &AnalyticsService{clients: cl}
	collections := &CollectionService{clients: cl}

	return &testEnv{
		db:          gdb,
		store:       store,
		images:      &ImageService{clients: cl, collections: collections, analytics: analytics},
		collections: collections,
		users:       &UserService{clients: cl},
		auth:        &AuthService{clients: cl, analytics: analytics},
		analytics:   analytics,
	}
}

func (e *testEnv) mkUser(t *testing.T, role model.Role) *model.User {
	t.Helper()

	u := &model.User{
		ID:       uuid.NewString(),
		Username: "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Role:     role,
	}

	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	return u
}

func (e *testEnv) mkCollection(t *testing.T, creator *model.User) *model.Collection {
	t.Helper()

	view, err := e.collections.Create(context.Background(), creator, &types.CreateCollectionRequest{Name: "测试集合"})
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}

	return view.Collection
}

func pngUpload(name string, size int) *UploadFile {
	return &UploadFile{
		Name:        name,
		ContentType: "image/png",
		Size:        int64(size),
		Reader:      bytes.NewReader(bytes.Repeat([]byte{0x1}, size)),
	}
}

func (e *testEnv) eventCount(t *testing.T, eventType model.EventType) int64 {
	t.Helper()

	var n int64
	if err := e.db.Model(&model.AnalyticsEvent{}).
		Where("event_type = ?", eventType).
		Count(&n).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}

	return n
}

// TestUploadSingle 创建者上传成功，元数据与对象一致.
func TestUploadSingle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	img, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("照片.png", 128))
	if err != nil {
		t.Fatalf("UploadSingle: %v", err)
	}

	if img.CollectionID != coll.ID || img.UploadedBy != creator.ID {
		t.Errorf("image ownership mismatch: %+v", img)
	}

	if img.ViewCount != 0 || img.DownloadCount != 0 {
		t.Errorf("counters should start at zero: %+v", img)
	}

	if !env.store.has(img.StorageKey) {
		t.Errorf("object %q missing in store", img.StorageKey)
	}

	wantPrefix := "collections/" + coll.ID + "/"
	if img.StorageKey[:len(wantPrefix)] != wantPrefix {
		t.Errorf("storage key %q not under %q", img.StorageKey, wantPrefix)
	}
}

// TestUploadSingleOversize 超限文件在写入对象前就被拒绝.
func TestUploadSingleOversize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	big := &UploadFile{
		Name:        "big.png",
		ContentType: "image/png",
		Size:        configs.GetConfig().Upload.MaxSizeBytes + 1,
		Reader:      bytes.NewReader(nil),
	}

	_, err := env.images.UploadSingle(ctx, creator, coll.ID, big)
	if !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if env.store.count() != 0 {
		t.Error("oversize upload must not reach the object store")
	}

	var n int64
	env.db.Model(&model.Image{}).Count(&n)

	if n != 0 {
		t.Error("oversize upload must not create metadata")
	}
}

// TestUploadSingleForbidden 非授权用户上传被拒绝.
func TestUploadSingleForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	outsider := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	_, err := env.images.UploadSingle(ctx, outsider, coll.ID, pngUpload("a.png", 8))
	if !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if env.store.count() != 0 {
		t.Error("forbidden upload must not store objects")
	}
}

// TestUploadStoreFailure 对象写入失败映射为存储不可用，且不落元数据.
func TestUploadStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	env.store.failStore = true

	_, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("a.png", 8))
	if !apperr.IsCode(err, apperr.CodeStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}

	var n int64
	env.db.Model(&model.Image{}).Count(&n)

	if n != 0 {
		t.Error("failed store must not create metadata")
	}
}

// TestUploadBatchPartialFailure 批量上传尽力而为，单条失败不影响其余.
func TestUploadBatchPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	files := []*UploadFile{
		pngUpload("a.png", 16),
		{Name: "bad.exe", ContentType: "application/octet-stream", Size: 16, Reader: bytes.NewReader(make([]byte, 16))},
		pngUpload("b.png", 16),
	}

	resp, err := env.images.UploadBatch(ctx, creator, coll.ID, files)
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}

	if len(resp.Uploaded) != 2 || resp.FailedCount != 1 {
		t.Fatalf("uploaded=%d failed=%d, want 2/1", len(resp.Uploaded), resp.FailedCount)
	}

	if resp.Failed[0].FileName != "bad.exe" {
		t.Errorf("failed item = %+v, want bad.exe", resp.Failed[0])
	}

	if env.store.count() != 2 {
		t.Errorf("store holds %d objects, want 2", env.store.count())
	}
}

// TestUploadBatchLimits 空批与超限批直接拒绝.
func TestUploadBatchLimits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	if _, err := env.images.UploadBatch(ctx, creator, coll.ID, nil); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Errorf("empty batch: got %v", err)
	}

	tooMany := make([]*UploadFile, configs.GetConfig().Upload.BatchMax+1)
	for i := range tooMany {
		tooMany[i] = pngUpload(fmt.Sprintf("f%d.png", i), 8)
	}

	if _, err := env.images.UploadBatch(ctx, creator, coll.ID, tooMany); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Errorf("oversized batch: got %v", err)
	}
}

// TestGetImageIncrementsViewCount 每次读取详情递增查看计数并记录 view 事件.
func TestGetImageIncrementsViewCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	img, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("a.png", 8))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	for i := range 2 {
		got, err := env.images.Get(ctx, creator, img.ID)
		if err != nil {
			t.Fatalf("Get #%d: %v", i+1, err)
		}

		if got.ViewCount != int64(i+1) {
			t.Errorf("view count after get #%d = %d", i+1, got.ViewCount)
		}
	}

	var stored model.Image
	if err := env.db.First(&stored, "id = ?", img.ID).Error; err != nil {
		t.Fatalf("load image: %v", err)
	}

	if stored.ViewCount != 2 {
		t.Errorf("persisted view count = %d, want 2", stored.ViewCount)
	}

	if n := env.eventCount(t, model.EventView); n != 2 {
		t.Errorf("view events = %d, want 2", n)
	}
}

// TestDownloadURL 下载 URL 返回签名地址，递增下载计数并记录 download 事件.
func TestDownloadURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	img, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("a.png", 8))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	resp, err := env.images.DownloadURL(ctx, creator, img.ID)
	if err != nil {
		t.Fatalf("DownloadURL: %v", err)
	}

	if resp.URL != "https://signed.test/"+img.StorageKey {
		t.Errorf("url = %q", resp.URL)
	}

	if resp.ExpiresIn != configs.GetConfig().Upload.SignedURLTTLSeconds {
		t.Errorf("expiresIn = %d", resp.ExpiresIn)
	}

	var stored model.Image
	if err := env.db.First(&stored, "id = ?", img.ID).Error; err != nil {
		t.Fatalf("load image: %v", err)
	}

	if stored.DownloadCount != 1 {
		t.Errorf("download count = %d, want 1", stored.DownloadCount)
	}

	if n := env.eventCount(t, model.EventDownload); n != 1 {
		t.Errorf("download events = %d, want 1", n)
	}
}

// TestDeleteImageRemoteFailure 远端删除失败时元数据仍被清理.
func TestDeleteImageRemoteFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	img, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("a.png", 8))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	env.store.failDelete = true

	if err := env.images.Delete(ctx, creator, img.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var n int64
	env.db.Model(&model.Image{}).Where("id = ?", img.ID).Count(&n)

	if n != 0 {
		t.Error("metadata must be cleaned up even when remote delete fails")
	}
}

// TestDeleteImageForbidden 无修改权限的用户不能删除，任何状态都不变.
func TestDeleteImageForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	member := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	img, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("a.png", 8))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	// 仅授予读取权限
	if _, err := env.collections.SetAccess(ctx, creator, coll.ID, &types.CollectionAccessRequest{
		UserID: member.ID,
		Action: "grant",
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	if err := env.images.Delete(ctx, member, img.ID); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	var n int64
	env.db.Model(&model.Image{}).Where("id = ?", img.ID).Count(&n)

	if n != 1 || !env.store.has(img.StorageKey) {
		t.Error("forbidden delete must not mutate anything")
	}
}

// TestSetAccessGrantRevoke 授权可见、重复授权幂等、撤销后不可见.
func TestSetAccessGrantRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	member := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	if _, err := env.collections.Get(ctx, member, coll.ID); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("pre-grant access: got %v", err)
	}

	grant := &types.CollectionAccessRequest{UserID: member.ID, Action: "grant"}

	view, err := env.collections.SetAccess(ctx, creator, coll.ID, grant)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}

	if len(view.AccessibleUserIDs) != 1 || view.AccessibleUserIDs[0] != member.ID {
		t.Errorf("accessibleUserIds = %v", view.AccessibleUserIDs)
	}

	if _, err := env.collections.Get(ctx, member, coll.ID); err != nil {
		t.Fatalf("post-grant access: %v", err)
	}

	// 重复授权幂等
	if _, err := env.collections.SetAccess(ctx, creator, coll.ID, grant); err != nil {
		t.Fatalf("re-grant: %v", err)
	}

	var n int64
	env.db.Model(&model.CollectionAccess{}).Where("collection_id = ?", coll.ID).Count(&n)

	if n != 1 {
		t.Errorf("access rows = %d, want 1", n)
	}

	if _, err := env.collections.SetAccess(ctx, creator, coll.ID, &types.CollectionAccessRequest{
		UserID: member.ID,
		Action: "revoke",
	}); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, err := env.collections.Get(ctx, member, coll.ID); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("post-revoke access: got %v", err)
	}
}

// TestSetAccessForbiddenForMembers 普通成员不能管理授权.
func TestSetAccessForbiddenForMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	member := env.mkUser(t, model.RoleUser)
	other := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	if _, err := env.collections.SetAccess(ctx, creator, coll.ID, &types.CollectionAccessRequest{
		UserID: member.ID,
		Action: "grant",
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	_, err := env.collections.SetAccess(ctx, member, coll.ID, &types.CollectionAccessRequest{
		UserID: other.ID,
		Action: "grant",
	})
	if !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("member managing access: got %v", err)
	}
}

// TestCollectionListVisibility 管理员可见全部，普通用户仅见自建和被授权的.
func TestCollectionListVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.mkUser(t, model.RoleAdmin)
	alice := env.mkUser(t, model.RoleUser)
	bob := env.mkUser(t, model.RoleUser)

	own := env.mkCollection(t, alice)
	granted := env.mkCollection(t, bob)
	hidden := env.mkCollection(t, bob)

	if _, err := env.collections.SetAccess(ctx, bob, granted.ID, &types.CollectionAccessRequest{
		UserID: alice.ID,
		Action: "grant",
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	views, err := env.collections.List(ctx, alice)
	if err != nil {
		t.Fatalf("List(alice): %v", err)
	}

	got := map[string]bool{}
	for _, v := range views {
		got[v.Collection.ID] = true
	}

	if !got[own.ID] || !got[granted.ID] || got[hidden.ID] {
		t.Errorf("alice sees %v", got)
	}

	adminViews, err := env.collections.List(ctx, admin)
	if err != nil {
		t.Fatalf("List(admin): %v", err)
	}

	if len(adminViews) != 3 {
		t.Errorf("admin sees %d collections, want 3", len(adminViews))
	}
}

// TestCollectionDeleteCascades 删除集合清理图片、授权与远端对象.
func TestCollectionDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	member := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	img, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("a.png", 8))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := env.collections.SetAccess(ctx, creator, coll.ID, &types.CollectionAccessRequest{
		UserID: member.ID,
		Action: "grant",
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	if err := env.collections.Delete(ctx, creator, coll.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var images, accesses, colls int64
	env.db.Model(&model.Image{}).Count(&images)
	env.db.Model(&model.CollectionAccess{}).Count(&accesses)
	env.db.Model(&model.Collection{}).Count(&colls)

	if images != 0 || accesses != 0 || colls != 0 {
		t.Errorf("leftovers after delete: images=%d accesses=%d collections=%d", images, accesses, colls)
	}

	if env.store.has(img.StorageKey) {
		t.Error("remote object should be removed with the collection")
	}
}

// TestListImagesNewestFirst 图集图片按上传时间倒序.
func TestListImagesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	older := &model.Image{
		ID: uuid.NewString(), CollectionID: coll.ID, StorageKey: "collections/" + coll.ID + "/old.png",
		UploadedBy: creator.ID, UploadedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &model.Image{
		ID: uuid.NewString(), CollectionID: coll.ID, StorageKey: "collections/" + coll.ID + "/new.png",
		UploadedBy: creator.ID, UploadedAt: time.Now().UTC(),
	}

	if err := env.db.Create(older).Error; err != nil {
		t.Fatalf("seed older: %v", err)
	}

	if err := env.db.Create(newer).Error; err != nil {
		t.Fatalf("seed newer: %v", err)
	}

	resp, err := env.images.List(ctx, creator, coll.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if resp.Total != 2 || len(resp.Images) != 2 {
		t.Fatalf("total=%d len=%d", resp.Total, len(resp.Images))
	}

	if resp.Images[0].ID != newer.ID {
		t.Error("images should be ordered newest first")
	}
}

// TestLoginFlow 创建用户后用初始密码登录，错误密码拒绝，登录记录事件.
func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Create(ctx, &types.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if created.InitialPassword == "" {
		t.Fatal("initial password must be returned once")
	}

	if _, err := env.auth.Login(ctx, &types.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	}); !apperr.IsCode(err, apperr.CodeUnauthorized) {
		t.Fatalf("wrong password: got %v", err)
	}

	resp, err := env.auth.Login(ctx, &types.LoginRequest{
		Username: "alice",
		Password: created.InitialPassword,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if claims.Subject != created.User.ID || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}

	if resp.User.LastLogin == nil {
		t.Error("last login should be set")
	}

	if n := env.eventCount(t, model.EventLogin); n != 1 {
		t.Errorf("login events = %d, want 1", n)
	}
}

// TestResetPassword 重置后旧密码失效、新密码可登录.
func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Create(ctx, &types.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	reset, err := env.users.ResetPassword(ctx, created.User.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := env.auth.Login(ctx, &types.LoginRequest{
		Username: "bob",
		Password: created.InitialPassword,
	}); !apperr.IsCode(err, apperr.CodeUnauthorized) {
		t.Fatalf("old password should fail: got %v", err)
	}

	if _, err := env.auth.Login(ctx, &types.LoginRequest{
		Username: "bob",
		Password: reset.NewPassword,
	}); err != nil {
		t.Fatalf("new password login: %v", err)
	}
}

// TestCreateUserConflict 用户名或邮箱重复返回冲突.
func TestCreateUserConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := &types.CreateUserRequest{Username: "carol", Email: "carol@example.com"}

	if _, err := env.users.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := env.users.Create(ctx, req); !apperr.IsCode(err, apperr.CodeConflict) {
		t.Fatalf("duplicate create: got %v", err)
	}
}

// TestDeleteUserCleansAccess 删除用户时清理其授权关系.
func TestDeleteUserCleansAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	member := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	if _, err := env.collections.SetAccess(ctx, creator, coll.ID, &types.CollectionAccessRequest{
		UserID: member.ID,
		Action: "grant",
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	if err := env.users.Delete(ctx, member.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var n int64
	env.db.Model(&model.CollectionAccess{}).Where("user_id = ?", member.ID).Count(&n)

	if n != 0 {
		t.Error("access rows for deleted user should be gone")
	}
}

// TestDashboard 总览统计聚合.
func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.mkUser(t, model.RoleUser)
	coll := env.mkCollection(t, creator)

	if _, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("a.png", 100)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := env.images.UploadSingle(ctx, creator, coll.ID, pngUpload("b.png", 50)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	resp, err := env.analytics.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if resp.TotalUsers != 1 || resp.TotalCollections != 1 || resp.TotalImages != 2 {
		t.Errorf("totals = %+v", resp)
	}

	if resp.StorageBytes != 150 {
		t.Errorf("storage bytes = %d, want 150", resp.StorageBytes)
	}
}

// TestAnalyticsPrune 只清理早于阈值的事件.
func TestAnalyticsPrune(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.mkUser(t, model.RoleUser)

	old := &model.AnalyticsEvent{
		ID: uuid.NewString(), UserID: user.ID, EventType: model.EventLogin,
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	recent := &model.AnalyticsEvent{
		ID: uuid.NewString(), UserID: user.ID, EventType: model.EventLogin,
		CreatedAt: time.Now().UTC(),
	}

	if err := env.db.Create(old).Error; err != nil {
		t.Fatalf("seed old: %v", err)
	}

	if err := env.db.Create(recent).Error; err != nil {
		t.Fatalf("seed recent: %v", err)
	}

	n, err := env.analytics.PruneOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}

	if n != 1 {
		t.Errorf("pruned = %d, want 1", n)
	}

	var left int64
	env.db.Model(&model.AnalyticsEvent{}).Count(&left)

	if left != 1 {
		t.Errorf("remaining = %d, want 1", left)
	}
}
