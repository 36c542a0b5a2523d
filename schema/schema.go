// Package schema has configs, models and global variables for all parts of protein-analyser.
package schema

// ProductRecord is the immutable extracted record for one protein-powder product.
// It is produced once by the upstream label-extraction step and never mutated;
// every scoring artifact is a pure function of it plus the scoring parameters.
// Numeric leaves are pointers: nil means the label did not state the value and
// is never confused with a stated zero.
type ProductRecord struct {
	Brand       string       `json:"brand"`
	ProductInfo *ProductInfo `json:"product_info,omitempty"`
	Nutrients   NutrientDoc  `json:"nutrients"`
	AminoAcids  AminoAcidDoc `json:"aminoacids"`
}

// ProductInfo carries pack economics from the product listing.
type ProductInfo struct {
	WeightKg *float64 `json:"weight_kg"`
	Price    *float64 `json:"price"`
}

// NutrientDoc wraps the extracted nutrition-label fields.
type NutrientDoc struct {
	ExtractedFields NutrientFields `json:"extracted_fields"`
}

// NutrientFields holds the per-serving values stated on the nutrition label.
type NutrientFields struct {
	ServingSizeG      *float64 `json:"serving_size_g"`
	EnergyKcal        *float64 `json:"energy_kcal_per_serving"`
	ProteinG          *float64 `json:"protein_g_per_serving"`
	CarbohydratesG    *float64 `json:"carbohydrates_g_per_serving"`
	TotalFatG         *float64 `json:"total_fat_g_per_serving"`
	SodiumMg          *float64 `json:"sodium_mg_per_serving"`
	AddedSugarG       *float64 `json:"added_sugar_g_per_serving"`
	HeavyMetalsTested *bool    `json:"heavy_metals_tested"`
}

// AminoAcidDoc wraps the extracted amino-profile fields.
type AminoAcidDoc struct {
	ExtractedFields AminoFields `json:"extracted_fields"`
}

// AminoFields holds the amino-acid profile by category. Masses are grams on
// the basis stated by ServingBasis; an empty basis means per serving.
type AminoFields struct {
	ServingBasis ServingBasis `json:"serving_basis,omitempty"`
	EAAs         EAAGroup     `json:"eaas"`
	SEAAs        SEAAGroup    `json:"seaas"`
	NEAAs        NEAAGroup    `json:"neaas"`
}

// EAAGroup holds the essential amino acids, with BCAAs nested under them.
type EAAGroup struct {
	TotalG         *float64  `json:"total_g"`
	BCAAs          BCAAGroup `json:"bcaas"`
	LysineG        *float64  `json:"lysine_g"`
	MethionineG    *float64  `json:"methionine_g"`
	PhenylalanineG *float64  `json:"phenylalanine_g"`
	ThreonineG     *float64  `json:"threonine_g"`
	TryptophanG    *float64  `json:"tryptophan_g"`
	HistidineG     *float64  `json:"histidine_g"`
}

// BCAAGroup holds the branched-chain subset of the essential amino acids.
type BCAAGroup struct {
	TotalG      *float64 `json:"total_g"`
	LeucineG    *float64 `json:"leucine_g"`
	IsoleucineG *float64 `json:"isoleucine_g"`
	ValineG     *float64 `json:"valine_g"`
}

// SEAAGroup holds the semi-essential amino acids.
type SEAAGroup struct {
	TotalG    *float64 `json:"total_g"`
	ArginineG *float64 `json:"arginine_g"`
	CysteineG *float64 `json:"cysteine_g"`
	GlycineG  *float64 `json:"glycine_g"`
	ProlineG  *float64 `json:"proline_g"`
	TyrosineG *float64 `json:"tyrosine_g"`
	TaurineG  *float64 `json:"taurine_g,omitempty"`
}

// NEAAGroup holds the non-essential amino acids.
type NEAAGroup struct {
	TotalG        *float64 `json:"total_g"`
	SerineG       *float64 `json:"serine_g"`
	AlanineG      *float64 `json:"alanine_g"`
	AsparticAcidG *float64 `json:"aspartic_acid_g"`
	GlutamicAcidG *float64 `json:"glutamic_acid_g"`
}
