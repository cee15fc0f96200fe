package dto

// GetSpriteInput represents the input for resolving a species sprite URL
type GetSpriteInput struct {
	SpeciesNumber int `path:"species_number" minimum:"1" description:"National dex species number" example:"25"`
}

// GetItemEvEffectInput represents the input for looking up an item's EV effect
type GetItemEvEffectInput struct {
	ItemName string `path:"item_name" minLength:"1" maxLength:"100" description:"Item name; case and spacing insensitive" example:"HP Up"`
}

// ListNaturesInput represents the input for listing natures (no parameters needed)
type ListNaturesInput struct{}

// ListSpeciesInput represents the input for listing all species (no parameters needed)
type ListSpeciesInput struct{}

// WarmCacheInput represents the input for warming the EV item cache (no parameters needed)
type WarmCacheInput struct{}
