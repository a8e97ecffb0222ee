package store

import (
	"testing"

	"mgepcar/internal/models"
)

func TestMediaStoreCreateAndDelete(t *testing.T) {
	db := testDB(t)
	media := NewMediaStore(db)
	users := NewUserStore(db)

	email := "test-media@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	uploader, err := users.Create(email, "pass", "Uploader", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	thumb := "thumbs/store-test-m4.webp"
	created, err := media.Create(&models.Media{
		Filename:     "store-test-m4.webp",
		OriginalName: "bmw-m4.jpg",
		ContentType:  "image/webp",
		SizeBytes:    204_800,
		Bucket:       "car-images",
		S3Key:        "images/store-test-m4.webp",
		ThumbS3Key:   &thumb,
		UploaderID:   uploader.ID,
	})
	if err != nil {
		t.Fatalf("Create media: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM media WHERE id = $1", created.ID) })

	if !created.IsImage() {
		t.Error("expected IsImage for image/webp")
	}
	if created.HumanSize() != "200 KB" {
		t.Errorf("HumanSize: got %q, want %q", created.HumanSize(), "200 KB")
	}

	found, err := media.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.S3Key != created.S3Key {
		t.Errorf("FindByID returned wrong media: %+v", found)
	}

	if err := media.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, err = media.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if found != nil {
		t.Error("expected nil after delete")
	}
}
