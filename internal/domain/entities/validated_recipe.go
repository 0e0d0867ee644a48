package entities

type ValidatedRecipe struct {
	*Recipe
}

func NewValidatedRecipe(recipe *Recipe) (*ValidatedRecipe, error) {
	if err := recipe.validate(); err != nil {
		return nil, err
	}

	return &ValidatedRecipe{Recipe: recipe}, nil
}

func (vr *ValidatedRecipe) GetRecipe() *Recipe {
	return vr.Recipe
}

// SetImage records the reference returned by the image store.
func (vr *ValidatedRecipe) SetImage(ref string) {
	vr.Recipe.Image = ref
}

type ValidatedRecipePatch struct {
	*RecipePatch
}

func NewValidatedRecipePatch(patch *RecipePatch) (*ValidatedRecipePatch, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}

	return &ValidatedRecipePatch{RecipePatch: patch}, nil
}

func (vp *ValidatedRecipePatch) GetPatch() *RecipePatch {
	return vp.RecipePatch
}

func (vp *ValidatedRecipePatch) SetImage(ref string) {
	vp.RecipePatch.Image = &ref
}

type ValidatedAssociations struct {
	*RecipeAssociations
}

func NewValidatedAssociations(associations *RecipeAssociations) (*ValidatedAssociations, error) {
	if err := associations.validate(); err != nil {
		return nil, err
	}

	return &ValidatedAssociations{RecipeAssociations: associations}, nil
}

func (va *ValidatedAssociations) GetAssociations() *RecipeAssociations {
	return va.RecipeAssociations
}
