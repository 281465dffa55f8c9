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

// NameFromROR returns the organization name for a ROR id or URL. Withdrawn
// organizations are followed to their successor, at most MaxSuccessorHops
// times; past that the lookup gives up and returns "".
func (r *Registry) NameFromROR(ctx context.Context, id string) string {
	name, err := r.lookupROR(ctx, id)
	if err != nil {
		soft("ror", id, err)
		return ""
	}
	return name
}

type rorOrg struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Successor string `json:"successor"`
}

func (r *Registry) lookupROR(ctx context.Context, id string) (string, error) {
	ror := hub.NormalizeIdentifier(id, hub.SchemeROR)
	for hops := 0; ror != ""; hops++ {
		org, err := r.fetchROR(ctx, ror)
		if err != nil {
			return "", err
		}
		slog.Debug("ror record", "ror", ror, "name", org.Name, "status", org.Status)
		if !strings.EqualFold(org.Status, "withdrawn") {
			return org.Name, nil
		}
		if org.Successor == "" {
			slog.Debug("withdrawn ror record has no successor", "ror", ror)
			return "", nil
		}
		if hops >= MaxSuccessorHops {
			slog.Debug("ror successor chain too long", "ror", id, "hops", hops)
			return "", nil
		}
		ror = hub.NormalizeIdentifier(org.Successor, hub.SchemeROR)
	}
	return "", nil
}

type rorResponse struct {
	Name  string `json:"name"`
	Names []struct {
		Value string   `json:"value"`
		Types []string `json:"types"`
	} `json:"names"`
	Status        string `json:"status"`
	Relationships []struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"relationships"`
}

// displayName handles both the v1 "name" field and the v2 "names" list.
func (resp rorResponse) displayName() string {
	if resp.Name != "" {
		return resp.Name
	}
	for _, n := range resp.Names {
		for _, t := range n.Types {
			if t == "ror_display" {
				return n.Value
			}
		}
	}
	return ""
}

func (r *Registry) fetchROR(ctx context.Context, ror string) (rorOrg, error) {
	var org rorOrg
	err := r.client.Cached(ctx, "ror:"+ror, &org, func() error {
		data, err := r.client.GetBytes(ctx, fmt.Sprintf("%s/%s", r.endpoints.ROR, ror), nil)
		if errors.Is(err, httpclient.ErrNotFound) {
			org = rorOrg{}
			return nil
		}
		if err != nil {
			return err
		}

		var resp rorResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return &hub.InternalError{Op: "decode ror record " + ror, Err: err}
		}
		org = rorOrg{Name: resp.displayName(), Status: resp.Status}
		for _, rel := range resp.Relationships {
			if strings.EqualFold(rel.Type, "successor") {
				org.Successor = rel.ID
				break
			}
		}
		return nil
	})
	return org, err
}
