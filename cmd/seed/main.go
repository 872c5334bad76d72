package main

import (
	"context"
	"log"

	"github.com/hearthside/recipebook/config"
	"github.com/hearthside/recipebook/internal/database"
	"github.com/hearthside/recipebook/internal/service"
)

type seedRecipe struct {
	name             string
	shortDescription string
	description      string
	cookingTime      string
	difficulty       string
	servingSize      string
	ingredients      []service.IngredientInput
	steps            []string
	tags             string
}

var starterRecipes = []seedRecipe{
	{
		name:             "Spaghetti Carbonara",
		shortDescription: "Classic Italian pasta dish",
		description:      "A rich and creamy pasta dish with eggs, cheese, and pancetta.",
		cookingTime:      "20 minutes",
		difficulty:       "Medium",
		servingSize:      "4",
		ingredients: []service.IngredientInput{
			{Amount: "400g", Name: "spaghetti"},
			{Amount: "200g", Name: "pancetta"},
			{Amount: "4", Name: "large eggs"},
			{Amount: "100g", Name: "Pecorino cheese"},
			{Amount: "50g", Name: "Parmesan cheese"},
			{Amount: "2 cloves", Name: "garlic"},
		},
		steps: []string{
			"Cook spaghetti in salted water until al dente.",
			"Fry pancetta with crushed garlic.",
			"Beat eggs with grated cheeses.",
			"Toss hot pasta with pancetta, then with egg mixture.",
			"Serve immediately with extra cheese and black pepper.",
		},
		tags: "Italian,Pasta,Quick",
	},
	{
		name:             "Beef Tacos",
		shortDescription: "Flavorful beef tacos",
		description:      "Ground beef tacos with a blend of spices served in soft tortillas.",
		cookingTime:      "25 minutes",
		difficulty:       "Easy",
		servingSize:      "4",
		ingredients: []service.IngredientInput{
			{Amount: "500g", Name: "ground beef"},
			{Amount: "1", Name: "onion"},
			{Amount: "2 cloves", Name: "garlic"},
			{Amount: "2 tsp", Name: "chili powder"},
			{Amount: "1 tsp", Name: "cumin"},
			{Amount: "1/2 tsp", Name: "paprika"},
			{Amount: "8", Name: "small tortillas"},
		},
		steps: []string{
			"Sauté chopped onion and minced garlic until soft.",
			"Add ground beef and cook until browned.",
			"Stir in chili powder, cumin, and paprika. Simmer for 5 minutes.",
			"Warm tortillas and fill with beef mixture.",
			"Serve with toppings like lettuce, tomato, and cheese.",
		},
		tags: "Mexican,Beef,Quick",
	},
	{
		name:             "Vegetable Stir Fry",
		shortDescription: "Quick and healthy stir fry",
		description:      "A colorful mix of vegetables stir-fried in a savory sauce, served with rice.",
		cookingTime:      "20 minutes",
		difficulty:       "Easy",
		servingSize:      "2",
		ingredients: []service.IngredientInput{
			{Amount: "1", Name: "bell pepper"},
			{Amount: "1", Name: "carrot"},
			{Amount: "1", Name: "zucchini"},
			{Amount: "1 cup", Name: "broccoli florets"},
			{Amount: "2 tbsp", Name: "soy sauce"},
			{Amount: "1 tbsp", Name: "sesame oil"},
			{Amount: "1 tsp", Name: "ginger"},
			{Amount: "2 cloves", Name: "garlic"},
		},
		steps: []string{
			"Chop all vegetables into bite-sized pieces.",
			"Heat sesame oil in a large pan and sauté garlic and ginger.",
			"Add vegetables and stir-fry until tender-crisp.",
			"Stir in soy sauce and cook for another 2 minutes.",
			"Serve with steamed rice or noodles.",
		},
		tags: "Asian,Vegetarian,Quick",
	},
	{
		name:             "Margherita Pizza",
		shortDescription: "Classic Italian pizza",
		description:      "Traditional Margherita pizza with fresh basil, mozzarella, and tomato sauce.",
		cookingTime:      "15 minutes",
		difficulty:       "Medium",
		servingSize:      "4",
		ingredients: []service.IngredientInput{
			{Amount: "1", Name: "pizza dough"},
			{Amount: "1/2 cup", Name: "tomato sauce"},
			{Amount: "200g", Name: "mozzarella cheese"},
			{Amount: "1/4 cup", Name: "fresh basil leaves"},
			{Amount: "2 tbsp", Name: "olive oil"},
		},
		steps: []string{
			"Preheat oven to 250°C (480°F).",
			"Roll out pizza dough and spread tomato sauce evenly.",
			"Top with sliced mozzarella and drizzle with olive oil.",
			"Bake for 10-12 minutes until crust is golden and cheese is bubbling.",
			"Garnish with fresh basil leaves before serving.",
		},
		tags: "Italian,Pizza,Vegetarian",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	recipes := service.NewRecipeService(db, nil, nil)
	ctx := context.Background()

	for _, r := range starterRecipes {
		input := &service.RecipeInput{
			Name:             r.name,
			ShortDescription: r.shortDescription,
			Description:      r.description,
			CookingTime:      r.cookingTime,
			Difficulty:       r.difficulty,
			ServingSize:      r.servingSize,
			Ingredients:      r.ingredients,
			Steps:            r.steps,
			Tags:             service.NormalizeTags(r.tags),
		}
		created, err := recipes.CreateRecipe(ctx, input)
		if err != nil {
			if err == service.ErrDuplicateSlug {
				log.Printf("Skipping %q (already seeded)", r.name)
				continue
			}
			log.Fatalf("Failed to seed %q: %v", r.name, err)
		}
		log.Printf("Seeded %q as /%s", created.Name, created.Slug)
	}
}
