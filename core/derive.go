package core

import (
	"math"

	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// per100GDivisor converts per-100g amino masses to per-serving masses.
const per100GDivisor = 100.0

// deriveMetrics computes the comparable metrics for one product record.
// It is a pure function: unknown inputs propagate as nil outputs and are
// never replaced with defaults, and no rounding happens here. The returned
// warnings flag label-credibility and physical-range anomalies; they never
// change a value.
func deriveMetrics(rec *schema.ProductRecord) (schema.DerivedMetrics, []schema.Warning) {
	nut := rec.Nutrients.ExtractedFields
	amino := normalizeAminoProfile(rec.AminoAcids.ExtractedFields, nut.ServingSizeG)

	metrics := schema.DerivedMetrics{
		ProteinPct:        ratio(nut.ProteinG, nut.ServingSizeG),
		ProteinPer100Kcal: per100Kcal(nut.ProteinG, nut.EnergyKcal),
		BCAAsPctOfEAAs:    ratio(amino.EAAs.BCAAs.TotalG, amino.EAAs.TotalG),
		NonProteinMacrosG: sumWithKnownOperand(nut.CarbohydratesG, nut.TotalFatG),
		LeucineG:          amino.EAAs.BCAAs.LeucineG,
		ProteinG:          nut.ProteinG,
		SodiumMg:          nut.SodiumMg,
		AddedSugarG:       nut.AddedSugarG,
		TaurineG:          amino.SEAAs.TaurineG,
		HeavyMetalsTested: nut.HeavyMetalsTested,
	}

	// EAA fraction of protein: the raw ratio can exceed 1.0 on inconsistent
	// labels; the clamped value feeds scoring while the raw value feeds the
	// eaas_exceed_protein heuristic.
	metrics.EAAsPctRaw = ratio(amino.EAAs.TotalG, nut.ProteinG)
	if metrics.EAAsPctRaw != nil {
		metrics.EAAsPct = schema.F64(math.Min(*metrics.EAAsPctRaw, 1.0))
	}

	return metrics, collectWarnings(rec, nut)
}

// normalizeAminoProfile prepares an amino profile for per-serving math.
// Category totals absent from the label are completed from their members
// first, then every mass is rescaled when the label states a per-100g basis.
// A per-100g profile without a usable serving size yields an all-unknown
// profile rather than silently passing through mismatched units.
func normalizeAminoProfile(amino schema.AminoFields, servingSizeG *float64) schema.AminoFields {
	completed := completeAminoTotals(amino)

	if completed.ServingBasis != schema.Per100G {
		return completed
	}
	if servingSizeG == nil || *servingSizeG == 0 {
		return schema.AminoFields{ServingBasis: completed.ServingBasis}
	}
	return scaleAminoProfile(completed, *servingSizeG/per100GDivisor)
}

// completeAminoTotals fills in absent category totals when every member of
// the category is present. Sums are rounded to 3 decimals to match the
// precision label values carry. A single unknown member leaves the total
// unknown.
func completeAminoTotals(amino schema.AminoFields) schema.AminoFields {
	if amino.EAAs.BCAAs.TotalG == nil {
		amino.EAAs.BCAAs.TotalG = sumIfAllKnown(
			amino.EAAs.BCAAs.LeucineG,
			amino.EAAs.BCAAs.IsoleucineG,
			amino.EAAs.BCAAs.ValineG,
		)
	}
	if amino.EAAs.TotalG == nil {
		otherEAAs := sumIfAllKnown(
			amino.EAAs.LysineG,
			amino.EAAs.MethionineG,
			amino.EAAs.PhenylalanineG,
			amino.EAAs.ThreonineG,
			amino.EAAs.TryptophanG,
			amino.EAAs.HistidineG,
		)
		amino.EAAs.TotalG = sumIfAllKnown(amino.EAAs.BCAAs.TotalG, otherEAAs)
	}
	if amino.SEAAs.TotalG == nil {
		amino.SEAAs.TotalG = sumIfAllKnown(
			amino.SEAAs.ArginineG,
			amino.SEAAs.CysteineG,
			amino.SEAAs.GlycineG,
			amino.SEAAs.ProlineG,
			amino.SEAAs.TyrosineG,
		)
	}
	if amino.NEAAs.TotalG == nil {
		amino.NEAAs.TotalG = sumIfAllKnown(
			amino.NEAAs.SerineG,
			amino.NEAAs.AlanineG,
			amino.NEAAs.AsparticAcidG,
			amino.NEAAs.GlutamicAcidG,
		)
	}
	return amino
}

// scaleAminoProfile multiplies every known amino mass by factor. The basis
// marker is preserved; the caller decides what the rescaled values mean.
func scaleAminoProfile(amino schema.AminoFields, factor float64) schema.AminoFields {
	scale := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return schema.F64(*v * factor)
	}

	amino.EAAs.TotalG = scale(amino.EAAs.TotalG)
	amino.EAAs.BCAAs.TotalG = scale(amino.EAAs.BCAAs.TotalG)
	amino.EAAs.BCAAs.LeucineG = scale(amino.EAAs.BCAAs.LeucineG)
	amino.EAAs.BCAAs.IsoleucineG = scale(amino.EAAs.BCAAs.IsoleucineG)
	amino.EAAs.BCAAs.ValineG = scale(amino.EAAs.BCAAs.ValineG)
	amino.EAAs.LysineG = scale(amino.EAAs.LysineG)
	amino.EAAs.MethionineG = scale(amino.EAAs.MethionineG)
	amino.EAAs.PhenylalanineG = scale(amino.EAAs.PhenylalanineG)
	amino.EAAs.ThreonineG = scale(amino.EAAs.ThreonineG)
	amino.EAAs.TryptophanG = scale(amino.EAAs.TryptophanG)
	amino.EAAs.HistidineG = scale(amino.EAAs.HistidineG)
	amino.SEAAs.TotalG = scale(amino.SEAAs.TotalG)
	amino.SEAAs.ArginineG = scale(amino.SEAAs.ArginineG)
	amino.SEAAs.CysteineG = scale(amino.SEAAs.CysteineG)
	amino.SEAAs.GlycineG = scale(amino.SEAAs.GlycineG)
	amino.SEAAs.ProlineG = scale(amino.SEAAs.ProlineG)
	amino.SEAAs.TyrosineG = scale(amino.SEAAs.TyrosineG)
	amino.SEAAs.TaurineG = scale(amino.SEAAs.TaurineG)
	amino.NEAAs.TotalG = scale(amino.NEAAs.TotalG)
	amino.NEAAs.SerineG = scale(amino.NEAAs.SerineG)
	amino.NEAAs.AlanineG = scale(amino.NEAAs.AlanineG)
	amino.NEAAs.AsparticAcidG = scale(amino.NEAAs.AsparticAcidG)
	amino.NEAAs.GlutamicAcidG = scale(amino.NEAAs.GlutamicAcidG)
	return amino
}

// collectWarnings gathers the informational anomalies for one record, in a
// fixed order so reports marshal deterministically.
func collectWarnings(rec *schema.ProductRecord, nut schema.NutrientFields) []schema.Warning {
	warnings := []schema.Warning{}

	if nut.ProteinG == nil || nut.CarbohydratesG == nil || nut.TotalFatG == nil {
		warnings = append(warnings, schema.WarnMissingMacros)
	}
	if nut.SodiumMg != nil && *nut.SodiumMg == 0 {
		warnings = append(warnings, schema.WarnSodiumReportedZero)
	}
	if nut.HeavyMetalsTested == nil || !*nut.HeavyMetalsTested {
		warnings = append(warnings, schema.WarnHeavyMetalsUntested)
	}
	warnings = append(warnings, negativeValueWarnings(rec, nut)...)
	if nut.ProteinG != nil && nut.ServingSizeG != nil && *nut.ProteinG > *nut.ServingSizeG {
		warnings = append(warnings, schema.WarnProteinExceedsServing)
	}

	return warnings
}

// negativeValueWarnings flags mass and energy fields stated as negative.
// Checked on the values as extracted: a negative mass stays negative under
// basis rescaling, so the pre-normalization check covers both bases.
func negativeValueWarnings(rec *schema.ProductRecord, nut schema.NutrientFields) []schema.Warning {
	amino := rec.AminoAcids.ExtractedFields
	checks := []struct {
		field string
		value *float64
	}{
		{"serving_size_g", nut.ServingSizeG},
		{"energy_kcal_per_serving", nut.EnergyKcal},
		{"protein_g_per_serving", nut.ProteinG},
		{"carbohydrates_g_per_serving", nut.CarbohydratesG},
		{"total_fat_g_per_serving", nut.TotalFatG},
		{"sodium_mg_per_serving", nut.SodiumMg},
		{"added_sugar_g_per_serving", nut.AddedSugarG},
		{"eaas.total_g", amino.EAAs.TotalG},
		{"bcaas.total_g", amino.EAAs.BCAAs.TotalG},
		{"leucine_g", amino.EAAs.BCAAs.LeucineG},
		{"glycine_g", amino.SEAAs.GlycineG},
	}

	var warnings []schema.Warning
	for _, c := range checks {
		if c.value != nil && *c.value < 0 {
			warnings = append(warnings, schema.NegativeValueWarning(c.field))
		}
	}
	return warnings
}

// ratio divides num by den, propagating unknowns and guarding zero divisors.
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	return schema.F64(*num / *den)
}

// per100Kcal scales a per-serving mass to a per-100-kcal basis.
func per100Kcal(mass, energyKcal *float64) *float64 {
	if mass == nil || energyKcal == nil || *energyKcal == 0 {
		return nil
	}
	return schema.F64(*mass * 100.0 / *energyKcal)
}

// sumIfAllKnown sums the values only when every operand is known, rounding to
// 3 decimals to match label precision.
func sumIfAllKnown(values ...*float64) *float64 {
	var sum float64
	for _, v := range values {
		if v == nil {
			return nil
		}
		sum += *v
	}
	return schema.F64(round3(sum))
}

// sumWithKnownOperand sums two optional values treating a missing operand as
// zero, as long as at least one is known. Both unknown stays unknown.
func sumWithKnownOperand(a, b *float64) *float64 {
	if a == nil && b == nil {
		return nil
	}
	var sum float64
	if a != nil {
		sum += *a
	}
	if b != nil {
		sum += *b
	}
	return schema.F64(sum)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
