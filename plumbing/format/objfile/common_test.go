package objfile

import (
	"github.com/go-gitdb/gitdb/plumbing"
)

type objfileFixture struct {
	hash    string // hash of data
	t       plumbing.ObjectType
	content string // base64-encoded content
	data    string // base64-encoded objfile data
}

var objfileFixtures = []objfileFixture{
	{
		"e69de29bb2d1d6434b8b29ae775ad8c2e48c5391",
		plumbing.BlobObject,
		"",
		"eJxLyslPUjBgAAAJsAHw",
	},
	{
		"3b18e512dba79e4c8300dd08aeb37f8e728b8dad",
		plumbing.BlobObject,
		"aGVsbG8gd29ybGQK",
		"eJxLyslPUjA0YshIzcnJVyjPL8pJ4QIARBEGiQ==",
	},
	{
		"962d7da03625ef1213c261468cd4ccf173f576db",
		plumbing.CommitObject,
		"dHJlZSA0YjgyNWRjNjQyY2I2ZWI5YTA2MGU1NGJmOGQ2OTI4OGZiZWU0OTA0CmF1dGhvciBKb2huIERvZSA8am9obkBleGFtcGxlLmNvbT4gMTI1Nzg5NDAwMCArMDEwMApjb21taXR0ZXIgSm9obiBEb2UgPGpvaG5AZXhhbXBsZS5jb20+IDEyNTc4OTQwMDAgKzAxMDAKCmluaXRpYWwK",
		"eJyVzUEKwjAQQFHXOcXsBZmEyTgBERddeYskndJI05QSweNXvIG7v3n83GotHSy7U99VgZI4P2YmlxNrChEZ1VOaZOTgRKakSgHJxHef2w7PNq8wNIXb61sP/cS6LXrJrd7BOn+VQIgIZ7SIJv9mXf9kpqyll7iYA9JlM7g=",
	},
}
