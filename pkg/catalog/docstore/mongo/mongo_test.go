package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

func TestFilterFromConditions(t *testing.T) {
	t.Run("TranslatesOperators", func(t *testing.T) {
		filter := filterFromConditions([]catalog.Condition{
			{Field: "price", Op: catalog.OpGreaterOrEqual, Value: 10},
			{Field: "price", Op: catalog.OpLess, Value: 100},
			{Field: "name", Op: catalog.OpEqual, Value: "widget"},
			{Field: "tag", Op: catalog.OpIn, Value: []any{"a", "b"}},
		})

		require.Contains(t, filter, "price")
		price := filter["price"].(bson.M)
		assert.Equal(t, 10, price["$gte"])
		assert.Equal(t, 100, price["$lt"])

		name := filter["name"].(bson.M)
		assert.Equal(t, "widget", name["$eq"])

		tag := filter["tag"].(bson.M)
		assert.Equal(t, []any{"a", "b"}, tag["$in"])
	})

	t.Run("SkipsMalformedConditions", func(t *testing.T) {
		filter := filterFromConditions([]catalog.Condition{
			{Field: "", Op: catalog.OpEqual, Value: 1},
			{Field: "price", Op: "almost", Value: 1},
		})
		assert.Empty(t, filter)
	})

	t.Run("EmptyConditions", func(t *testing.T) {
		assert.Empty(t, filterFromConditions(nil))
	})
}

func TestRecordFromDoc(t *testing.T) {
	t.Run("DropsUnderscoreIDAndMirrorsID", func(t *testing.T) {
		rec := recordFromDoc(bson.M{"_id": "abc", "name": "widget"})
		assert.NotContains(t, rec, "_id")
		assert.Equal(t, "abc", rec["id"])
		assert.Equal(t, "widget", rec["name"])
	})

	t.Run("KeepsExplicitID", func(t *testing.T) {
		rec := recordFromDoc(bson.M{"_id": "abc", "id": "abc", "price": 1.5})
		assert.Equal(t, "abc", rec["id"])
	})

	t.Run("NormalizesImagesArray", func(t *testing.T) {
		rec := recordFromDoc(bson.M{"_id": "abc", "images": bson.A{"u1", "u2"}})
		images, ok := rec["images"].([]any)
		require.True(t, ok)
		assert.Equal(t, []any{"u1", "u2"}, images)
	})
}
