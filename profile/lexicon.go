package profile

// stopwords are French and English function words never kept as keywords.
// Only tokens of four letters or more reach the filter, but the full set is
// kept so it can be reused by callers with a shorter minimum.
var stopwords = map[string]struct{}{
	"je": {}, "nous": {}, "vous": {}, "ils": {}, "elles": {},
	"le": {}, "la": {}, "les": {}, "des": {}, "de": {}, "du": {}, "un": {}, "une": {},
	"et": {}, "ou": {}, "mais": {}, "dans": {}, "sur": {}, "avec": {}, "pour": {}, "par": {},
	"mon": {}, "ma": {}, "mes": {}, "ton": {}, "ta": {}, "tes": {}, "son": {}, "sa": {}, "ses": {},
	"notre": {}, "vos": {}, "leur": {}, "leurs": {},
	"the": {}, "a": {}, "an": {}, "of": {}, "in": {}, "on": {}, "at": {}, "for": {}, "to": {},
	"from": {}, "by": {}, "and": {}, "or": {},
	"this": {}, "that": {}, "these": {}, "those": {},
}

// roleTerms flag a résumé line as a probable job title. Matching is a
// case-insensitive substring test, so "technicien" also covers "technicienne".
var roleTerms = []string{
	// French
	"technicien", "agent", "analyste", "ingénieur", "ingenieur",
	"développeur", "developpeur", "développeuse", "assistant",
	"conseiller", "conseillère", "représentant", "representant",
	"superviseur", "gestionnaire", "préparateur", "préparatrice",
	"caissier", "caissière", "vendeur", "vendeuse", "chauffeur", "livreur",
	"magasinier", "comptable", "infirmier", "infirmière", "administrateur",
	"administratrice", "coordonnateur", "coordonnatrice", "support",
	"informatique", "logistique", "banque", "financier", "finance",

	// English
	"technician", "analyst", "engineer", "developer", "advisor", "adviser",
	"supervisor", "manager", "cashier", "driver", "accountant", "nurse",
	"administrator", "coordinator", "logistics",
}

// IsStopword reports whether token is excluded from keyword ranking
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
