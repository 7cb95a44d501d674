package resumes

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPatchSetIncludesOnlySuppliedFields(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	text := "updated"

	set := patchSet(Patch{Text: &text}, now)
	if len(set) != 2 {
		t.Fatalf("expected text and updated_at, got %v", set)
	}
	if set["text"] != "updated" || set["updated_at"] != now {
		t.Fatalf("unexpected set %v", set)
	}
	if _, ok := set["filename"]; ok {
		t.Fatalf("filename must not be set")
	}
}

func TestMongoDocumentRoundTrip(t *testing.T) {
	created := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	doc := toMongo(Resume{Filename: "cv.pdf", Text: "hello", CreatedAt: created})
	if !doc.ID.IsZero() {
		t.Fatalf("id must be left for the server to assign")
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := bson.Raw(raw).LookupErr("archive_key"); err == nil {
		t.Fatalf("empty archive_key should be omitted")
	}

	doc.ID = primitive.NewObjectID()
	got := doc.toResume()
	if got.ID != doc.ID.Hex() || got.Filename != "cv.pdf" || !got.UpdatedAt.Equal(created) {
		t.Fatalf("unexpected resume %+v", got)
	}
}

func TestMongoDecodesLegacyDocuments(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{"_id": oid, "filename": "old.pdf", "text": "legacy"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc mongoResume
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := doc.toResume()
	if got.ID != oid.Hex() || got.Filename != "old.pdf" || got.Text != "legacy" {
		t.Fatalf("unexpected resume %+v", got)
	}
}
