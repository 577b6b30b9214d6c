package store

import "time"

// Timestamps are stored inside the document as RFC 3339 strings, so every
// backend persists the same JSON shape.
const timestampLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// stampCreate builds the document persisted by Create: the caller's fields
// plus a fresh id and equal createdAt/updatedAt stamps.
func stampCreate(data Document, id string, now time.Time) Document {
	doc := make(Document, len(data)+3)
	for k, v := range data {
		doc[k] = v
	}
	ts := formatTime(now)
	doc["id"] = id
	doc["createdAt"] = ts
	doc["updatedAt"] = ts
	return doc
}

// stampUpdate merges the caller's fields over the existing document, pins the
// id, and advances updatedAt.
func stampUpdate(existing, data Document, id string, now time.Time) Document {
	doc := make(Document, len(existing)+len(data)+2)
	for k, v := range existing {
		doc[k] = v
	}
	for k, v := range data {
		doc[k] = v
	}
	doc["id"] = id
	doc["updatedAt"] = formatTime(now)
	return doc
}
