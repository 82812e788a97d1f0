package world

// Names holds every form an actor's name takes in narration.
type Names struct {
	Primary            string
	WithJob            string
	Full               string
	Arrive             string
	ArriveSuffix       string
	FinalCleanup       string
	Death              string
	Dead               string
	Prefix             string
	Conversational     string
	DeadConversational string
}

// MonsterNames: "the goblin", "A goblin has arrived.", "goblin (dead)".
func MonsterNames(name, arriveSuffix string) Names {
	return Names{
		Primary:            name,
		WithJob:            name,
		Full:               name,
		Arrive:             WithIndefiniteArticle(name, true),
		ArriveSuffix:       arriveSuffix,
		FinalCleanup:       "the " + name,
		Death:              "The " + name,
		Dead:               name + " (dead)",
		Prefix:             "the ",
		Conversational:     "the " + name,
		DeadConversational: "the spirit of the " + name,
	}
}

// NpcNames: "Bert the farmer", conversational "Bert".
func NpcNames(name, job, arriveSuffix string) Names {
	full := name + " the " + job
	return Names{
		Primary:            name,
		WithJob:            full,
		Full:               full,
		Arrive:             full,
		ArriveSuffix:       arriveSuffix,
		FinalCleanup:       full,
		Death:              full,
		Dead:               full + " (dead)",
		Prefix:             "",
		Conversational:     name,
		DeadConversational: "the spirit of " + full,
	}
}

// Random picks one of the primary, with-job and full forms.
func (n Names) Random(r *Rand) string {
	return Pick(r, []string{n.Primary, n.WithJob, n.Full})
}

// PrefixedRandom is Random with the article prefix.
func (n Names) PrefixedRandom(r *Rand) string {
	return n.Prefix + n.Random(r)
}

// CapitalizedPrefixedRandom starts a sentence.
func (n Names) CapitalizedPrefixedRandom(r *Rand) string {
	return Capitalize(n.PrefixedRandom(r))
}

// PrefixedFull is "the goblin" or "Bert the farmer".
func (n Names) PrefixedFull() string { return n.Prefix + n.Full }

// CapitalizedPrefixedFull starts a sentence.
func (n Names) CapitalizedPrefixedFull() string { return Capitalize(n.PrefixedFull()) }

// CapitalizedConversational starts a sentence.
func (n Names) CapitalizedConversational() string { return Capitalize(n.Conversational) }

// CapitalizedDeadConversational starts a sentence.
func (n Names) CapitalizedDeadConversational() string { return Capitalize(n.DeadConversational) }

func (n Names) Kneeling() string  { return n.Full + " (kneeling)" }
func (n Names) Sitting() string   { return n.Full + " (sitting)" }
func (n Names) LyingDown() string { return n.Full + " (lying down)" }
