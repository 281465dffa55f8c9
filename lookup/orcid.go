package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/iga/httpclient"
	"github.com/lehigh-university-libraries/iga/hub"
)

// NameFromORCID returns the given and family names for an ORCID id or URL.
func (r *Registry) NameFromORCID(ctx context.Context, id string) (string, string) {
	given, family, err := r.lookupORCID(ctx, id)
	if err != nil {
		soft("orcid", id, err)
		return "", ""
	}
	return given, family
}

type orcidNames struct {
	Credit string   `json:"credit"`
	Given  string   `json:"given"`
	Family string   `json:"family"`
	Other  []string `json:"other"`
}

func (r *Registry) lookupORCID(ctx context.Context, id string) (string, string, error) {
	orcid := hub.NormalizeIdentifier(id, hub.SchemeORCID)
	if orcid == "" {
		return "", "", nil
	}

	var names orcidNames
	err := r.client.Cached(ctx, "orcid:"+orcid, &names, func() error {
		n, err := r.fetchORCIDPerson(ctx, orcid)
		if err != nil && !errors.Is(err, hub.ErrInternal) {
			slog.Debug("orcid api unavailable, trying public record", "orcid", orcid, "error", err)
			n, err = r.fetchORCIDPublic(ctx, orcid)
		}
		if errors.Is(err, httpclient.ErrNotFound) {
			names = orcidNames{}
			return nil
		}
		names = n
		return err
	})
	if err != nil {
		return "", "", err
	}
	given, family := r.resolveNames(names)
	return given, family, nil
}

// resolveNames prefers the credit name for the given portion and the
// explicit family-name field over a split of the credit name.
func (r *Registry) resolveNames(n orcidNames) (string, string) {
	if isDeactivated(n) {
		return "", ""
	}

	var given, family string
	if n.Credit != "" {
		given, family = r.split(n.Credit)
		if n.Family != "" {
			family = n.Family
		}
	} else {
		given, family = n.Given, n.Family
	}
	if family != "" {
		return given, family
	}

	for _, other := range n.Other {
		if other != "" {
			return r.split(other)
		}
	}
	return given, family
}

func isDeactivated(n orcidNames) bool {
	return strings.EqualFold(strings.TrimSpace(n.Family), "deactivated")
}

type valueField struct {
	Value string `json:"value"`
}

func (v *valueField) get() string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(v.Value)
}

type orcidPerson struct {
	Name *struct {
		GivenNames *valueField `json:"given-names"`
		FamilyName *valueField `json:"family-name"`
		CreditName *valueField `json:"credit-name"`
	} `json:"name"`
	OtherNames *struct {
		OtherName []struct {
			Content string `json:"content"`
		} `json:"other-name"`
	} `json:"other-names"`
}

func (r *Registry) fetchORCIDPerson(ctx context.Context, orcid string) (orcidNames, error) {
	url := fmt.Sprintf("%s/%s/person", r.endpoints.ORCID, orcid)
	data, err := r.client.GetBytes(ctx, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return orcidNames{}, err
	}

	var p orcidPerson
	if err := json.Unmarshal(data, &p); err != nil {
		return orcidNames{}, &hub.InternalError{Op: "decode orcid person " + orcid, Err: err}
	}

	var n orcidNames
	if p.Name != nil {
		n.Credit = p.Name.CreditName.get()
		n.Given = p.Name.GivenNames.get()
		n.Family = p.Name.FamilyName.get()
	}
	if p.OtherNames != nil {
		for _, o := range p.OtherNames.OtherName {
			n.Other = append(n.Other, strings.TrimSpace(o.Content))
		}
	}
	return n, nil
}

type orcidPublicRecord struct {
	Names *struct {
		GivenNames *valueField `json:"givenNames"`
		FamilyName *valueField `json:"familyName"`
		CreditName *valueField `json:"creditName"`
	} `json:"names"`
	OtherNames *struct {
		OtherNames []struct {
			Content    string `json:"content"`
			SourceName string `json:"sourceName"`
		} `json:"otherNames"`
	} `json:"otherNames"`
}

func (r *Registry) fetchORCIDPublic(ctx context.Context, orcid string) (orcidNames, error) {
	url := fmt.Sprintf("%s/%s/public-record.json", r.endpoints.ORCIDPublic, orcid)
	data, err := r.client.GetBytes(ctx, url, nil)
	if err != nil {
		return orcidNames{}, err
	}

	var p orcidPublicRecord
	if err := json.Unmarshal(data, &p); err != nil {
		return orcidNames{}, &hub.InternalError{Op: "decode orcid public record " + orcid, Err: err}
	}

	var n orcidNames
	if p.Names != nil {
		n.Credit = p.Names.CreditName.get()
		n.Given = p.Names.GivenNames.get()
		n.Family = p.Names.FamilyName.get()
	}
	if p.OtherNames != nil {
		for _, o := range p.OtherNames.OtherNames {
			name := strings.TrimSpace(o.Content)
			if name == "" {
				name = strings.TrimSpace(o.SourceName)
			}
			n.Other = append(n.Other, name)
		}
	}
	return n, nil
}
