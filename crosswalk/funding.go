package crosswalk

import (
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/value"
)

// Funding values people write instead of leaving the field empty.
var notAvailable = []string{"n/a", "not available", "none"}

// funder returns the funder name and ROR id of a CodeMeta funder value.
func (b *build) funder(v any) hub.Funder {
	switch val := v.(type) {
	case string:
		return hub.Funder{Name: strings.TrimSpace(val)}
	case map[string]any:
		org := b.resolver.Organization(b.ctx, val, "@id", "identifier")
		if org.Name == "" {
			org.Name = value.FirstText(val, "@name")
		}
		return hub.Funder{ID: org.ID, Name: org.Name}
	}
	return hub.Funder{}
}

func newFunding(f hub.Funder, award *hub.Award) hub.Funding {
	funder := f
	return hub.Funding{Funder: &funder, Award: award}
}

func (b *build) funding() error {
	fundingItems := b.machine.List("funding")
	for _, item := range fundingItems {
		if s, ok := item.(string); ok {
			lower := strings.ToLower(s)
			if contains(notAvailable, func(t string) bool { return strings.Contains(lower, t) }) {
				slog.Debug("codemeta funding says not available")
				return nil
			}
		}
	}

	var funders []hub.Funder
	for _, item := range b.machine.List("funder") {
		if f := b.funder(item); f.Name != "" || f.ID != "" {
			funders = append(funders, f)
		}
	}

	// Several funders cannot be paired with award details.
	if len(funders) > 1 {
		if len(fundingItems) > 0 {
			slog.Debug("multiple funders with funding details; leaving funding empty")
			return nil
		}
		for _, f := range funders {
			b.rec.Funding = append(b.rec.Funding, newFunding(f, nil))
		}
		return nil
	}

	var funder hub.Funder
	if len(funders) == 1 {
		funder = funders[0]
	}
	if len(fundingItems) == 0 {
		if funder.Name != "" || funder.ID != "" {
			b.rec.Funding = []hub.Funding{newFunding(funder, nil)}
		}
		return nil
	}

	var results []hub.Funding
	for _, item := range fundingItems {
		switch val := item.(type) {
		case string:
			// Award names and numbers cannot be parsed reliably out of text.
			if funder.Name != "" || funder.ID != "" {
				b.rec.Funding = []hub.Funding{newFunding(funder, nil)}
			}
			return nil
		case map[string]any:
			itemFunder := b.funder(val["funder"])
			if itemFunder.Name == "" {
				itemFunder.Name = funder.Name
			}
			if itemFunder.ID == "" {
				itemFunder.ID = funder.ID
			}
			if itemFunder.Name == "" && itemFunder.ID == "" {
				slog.Debug("skipping funding item without a funder", "item", val)
				continue
			}
			awardName := value.FirstText(val, "name", "@name")
			awardID := value.FirstText(val, "identifier", "@id")
			var award *hub.Award
			if awardName != "" && awardID != "" {
				award = &hub.Award{Title: &hub.LangText{En: awardName}, Number: awardID}
			}
			results = append(results, newFunding(itemFunder, award))
		}
	}
	b.rec.Funding = dedupeFunding(results)
	return nil
}

func dedupeFunding(list []hub.Funding) []hub.Funding {
	seen := make(map[string]bool, len(list))
	var out []hub.Funding
	for _, f := range list {
		key := f.Funder.ID + "\x00" + f.Funder.Name
		if f.Award != nil {
			key += "\x00" + f.Award.Number
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, f)
		}
	}
	return out
}
