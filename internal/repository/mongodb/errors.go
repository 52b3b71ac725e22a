package mongodb

import (
	"errors"
	"regexp"
	"strings"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"

	"devevent/internal/domain"
)

// documentValidationFailure is the server code for a $jsonSchema validator rejection.
const documentValidationFailure = 121

// indexNameRegex extracts the index name from an E11000 message.
var indexNameRegex = regexp.MustCompile(`index: (\S+)`)

// classify converts a driver error into a *domain.StoreError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case mongo.IsDuplicateKeyError(err):
		return domain.NewStoreError(domain.StoreDuplicate, duplicateField(err), err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected), errors.Is(err, syscall.ECONNREFUSED):
		return domain.NewStoreError(domain.StoreConnectivity, "", err)
	case hasCode(err, documentValidationFailure):
		return domain.NewStoreError(domain.StoreValidation, "", err)
	}
	return domain.NewStoreError(domain.StoreOther, "", err)
}

func hasCode(err error, code int) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(code)
}

// duplicateField maps the violated index (e.g. "slug_1") to its field name.
func duplicateField(err error) string {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if f := indexField(e.Message); f != "" {
				return f
			}
		}
	}
	return indexField(err.Error())
}

func indexField(msg string) string {
	m := indexNameRegex.FindStringSubmatch(msg)
	if m == nil {
		return ""
	}
	name := m[1]
	if i := strings.LastIndex(name, "_"); i > 0 {
		name = name[:i]
	}
	return name
}
