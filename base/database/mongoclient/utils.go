package mongoclient

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"
)

var (
	ErrNotStruct = xerrors.New("patch must be a struct or a pointer to one")
)

// PatchFields turns a patch struct into the document of a $set. Nil pointers and
// zero values are left out, so only the fields a caller filled in get written.
// A set pointer is written through, even when it points at a zero value.
func PatchFields(patch interface{}) (bson.M, error) {
	val := reflect.ValueOf(patch)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	doc := bson.M{}
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() || field.IsZero() {
			continue
		}

		tag, err := bsoncodec.DefaultStructTagParser(typ.Field(i))
		if err != nil {
			return nil, err
		}
		if tag.Skip {
			continue
		}

		if field.Kind() == reflect.Ptr {
			doc[tag.Name] = field.Elem().Interface()
		} else {
			doc[tag.Name] = field.Interface()
		}
	}
	return doc, nil
}
