package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
	"github.com/hearthside/recipebook/internal/models"
)

func makeRecipe(name, short string, tags ...string) models.Recipe {
	r := models.Recipe{
		ID:               uuid.New(),
		Name:             name,
		Slug:             name,
		ShortDescription: short,
	}
	for _, t := range tags {
		r.Tags = append(r.Tags, models.Tag{Name: t})
	}
	return r
}

func makeRecipes(n int) []models.Recipe {
	recipes := make([]models.Recipe, n)
	for i := range recipes {
		recipes[i] = makeRecipe(fmt.Sprintf("recipe-%02d", i), "")
	}
	return recipes
}

func TestListViewTagFilterRequiresAllTags(t *testing.T) {
	v := NewListView([]models.Recipe{
		makeRecipe("carbonara", "", "Italian", "Pasta"),
		makeRecipe("pizza", "", "Italian"),
		makeRecipe("tacos", "", "Mexican"),
	})

	v.ToggleTag("Italian")
	require.Len(t, v.Filtered(), 2)

	v.ToggleTag("Pasta")
	filtered := v.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "carbonara", filtered[0].Name)

	v.ToggleTag("Pasta")
	assert.Len(t, v.Filtered(), 2)

	v.ClearTags()
	assert.Len(t, v.Filtered(), 3)
}

func TestListViewSearchMatchesAnyField(t *testing.T) {
	pasta := makeRecipe("Spaghetti Carbonara", "Classic Roman pasta")
	pasta.Ingredients = []models.Ingredient{{Name: "guanciale"}}
	tacos := makeRecipe("Beef Tacos", "Weeknight favourite", "Mexican")

	v := NewListView([]models.Recipe{pasta, tacos})

	v.SetQuery("roman")
	require.Len(t, v.Filtered(), 1)
	assert.Equal(t, "Spaghetti Carbonara", v.Filtered()[0].Name)

	v.SetQuery("guanciale")
	assert.Len(t, v.Filtered(), 1)

	v.SetQuery("mexican")
	require.Len(t, v.Filtered(), 1)
	assert.Equal(t, "Beef Tacos", v.Filtered()[0].Name)
}

func TestListViewSearchRequiresAllTerms(t *testing.T) {
	v := NewListView([]models.Recipe{
		makeRecipe("Beef Tacos", "Weeknight favourite"),
		makeRecipe("Beef Stew", "Slow cooked comfort"),
	})

	v.SetQuery("beef weeknight")
	require.Len(t, v.Filtered(), 1)
	assert.Equal(t, "Beef Tacos", v.Filtered()[0].Name)

	v.SetQuery("beef nowhere")
	assert.Empty(t, v.Filtered())
}

func TestListViewFiltersCompose(t *testing.T) {
	v := NewListView([]models.Recipe{
		makeRecipe("Beef Tacos", "", "Mexican"),
		makeRecipe("Beef Stew", ""),
		makeRecipe("Chicken Tacos", "", "Mexican"),
	})

	v.ToggleTag("Mexican")
	v.SetQuery("beef")
	require.Len(t, v.Filtered(), 1)
	assert.Equal(t, "Beef Tacos", v.Filtered()[0].Name)
}

func TestListViewAllTags(t *testing.T) {
	v := NewListView([]models.Recipe{
		makeRecipe("a", "", "Quick", "Italian"),
		makeRecipe("b", "", "Italian", "Vegan"),
	})
	assert.Equal(t, []string{"Italian", "Quick", "Vegan"}, v.AllTags())
}

func TestListViewPagination(t *testing.T) {
	v := NewListView(makeRecipes(20))

	assert.Equal(t, 3, v.TotalPages())
	assert.Len(t, v.Visible(), DefaultPageSize)

	v.SetPage(3)
	assert.Len(t, v.Visible(), 2)

	v.SetPage(99)
	assert.Equal(t, 3, v.Page())

	v.SetPage(-1)
	assert.Equal(t, 1, v.Page())
}

func TestListViewPaginationCoversEveryRecipeOnce(t *testing.T) {
	v := NewListView(makeRecipes(25))

	seen := make(map[string]int)
	for p := 1; p <= v.TotalPages(); p++ {
		v.SetPage(p)
		for _, r := range v.Visible() {
			seen[r.Name]++
		}
	}
	assert.Len(t, seen, 25)
	for name, count := range seen {
		assert.Equal(t, 1, count, name)
	}
}

func TestListViewFilterResetsPage(t *testing.T) {
	v := NewListView(makeRecipes(20))

	v.SetPage(3)
	v.SetQuery("recipe")
	assert.Equal(t, 1, v.Page())

	v.SetPage(2)
	v.ToggleTag("Quick")
	assert.Equal(t, 1, v.Page())
}

func TestListViewPageSizeChange(t *testing.T) {
	v := NewListView(makeRecipes(12))

	v.SetPageSize(MobilePageSize)
	assert.Equal(t, 2, v.TotalPages())
	assert.Len(t, v.Visible(), 6)

	v.SetPageSize(0)
	assert.Equal(t, 1, v.PageSize())
}

func TestListViewPageItemsWindow(t *testing.T) {
	v := NewListView(makeRecipes(90)) // 10 pages

	v.SetPage(5)
	items := v.PageItems()

	var rendered []string
	for _, item := range items {
		if item.Ellipsis {
			rendered = append(rendered, "...")
		} else {
			rendered = append(rendered, fmt.Sprintf("%d", item.Page))
		}
	}
	assert.Equal(t, []string{"1", "...", "4", "5", "6", "...", "10"}, rendered)
}

func TestListViewPageItemsNoEllipsisWhenFew(t *testing.T) {
	v := NewListView(makeRecipes(25)) // 3 pages

	v.SetPage(2)
	items := v.PageItems()
	require.Len(t, items, 3)
	for _, item := range items {
		assert.False(t, item.Ellipsis)
	}
}

func TestListViewPageItemsEdges(t *testing.T) {
	v := NewListView(makeRecipes(90)) // 10 pages

	v.SetPage(1)
	items := v.PageItems()
	assert.Equal(t, 1, items[0].Page)
	assert.Equal(t, 2, items[1].Page)
	assert.True(t, items[2].Ellipsis)
	assert.Equal(t, 10, items[3].Page)

	v.SetPage(10)
	items = v.PageItems()
	assert.Equal(t, 1, items[0].Page)
	assert.True(t, items[1].Ellipsis)
	assert.Equal(t, 9, items[2].Page)
	assert.Equal(t, 10, items[3].Page)
}

func TestListViewEmptyStates(t *testing.T) {
	v := NewListView(nil)
	assert.Equal(t, EmptyNoRecipes, v.Empty())
	assert.Equal(t, 1, v.TotalPages())

	v.SetRecipes([]models.Recipe{makeRecipe("tacos", "")})
	assert.Equal(t, EmptyNone, v.Empty())

	v.SetQuery("no such recipe")
	assert.Equal(t, EmptyNoMatches, v.Empty())
}

func TestListViewStateRoundTrip(t *testing.T) {
	recipes := makeRecipes(30)
	v := NewListView(recipes)
	v.ToggleTag("Italian")
	v.SetQuery("pasta")
	v.SetRecipes(recipes) // refresh keeps filters

	v.ClearTags()
	v.SetQuery("")
	v.SetPage(2)
	state := v.State()
	assert.Equal(t, 2, state.Page)

	restored := NewListView(recipes)
	restored.Restore(state)
	assert.Equal(t, 2, restored.Page())
	assert.Equal(t, v.Visible(), restored.Visible())
}

func TestListViewRestoreClampsStalePage(t *testing.T) {
	v := NewListView(makeRecipes(5))
	v.Restore(ListState{Page: 7, Query: ""})
	assert.Equal(t, 1, v.Page())
}
