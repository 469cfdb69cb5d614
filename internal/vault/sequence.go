package vault

import "github.com/dimitrije/credential-vault/internal/models"

// indexOf returns the position of the first record named name, or -1.
func indexOf(records []models.Credential, name string) int {
	for i, r := range records {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// The helpers below never write into the slice they are given; stores hand
// the result back only when the whole mutation succeeds.

func appendRecord(records []models.Credential, r models.Credential) []models.Credential {
	out := make([]models.Credential, len(records), len(records)+1)
	copy(out, records)
	return append(out, r)
}

func replaceAt(records []models.Credential, i int, r models.Credential) []models.Credential {
	out := make([]models.Credential, len(records))
	copy(out, records)
	out[i] = r
	return out
}

func removeAt(records []models.Credential, i int) []models.Credential {
	out := make([]models.Credential, 0, len(records)-1)
	out = append(out, records[:i]...)
	return append(out, records[i+1:]...)
}
