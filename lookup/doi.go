package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/lehigh-university-libraries/iga/httpclient"
	"github.com/lehigh-university-libraries/iga/hub"
)

const arxivDOIPrefix = "10.48550/"

// DOIForPublication returns a DOI for a DOI, arXiv, PMCID or PMID
// identifier. Other schemes yield "".
func (r *Registry) DOIForPublication(ctx context.Context, id string, scheme hub.Scheme) string {
	if scheme == "" {
		scheme, _ = hub.DetectScheme(id)
	}
	norm := hub.NormalizeIdentifier(id, scheme)
	if norm == "" {
		return ""
	}

	switch scheme {
	case hub.SchemeDOI:
		return norm
	case hub.SchemeArXiv:
		return ArXivDOI(norm)
	case hub.SchemePMCID, hub.SchemePMID:
		doi, err := r.pubmedDOI(ctx, norm)
		if err != nil {
			soft("idconv", norm, err)
			return ""
		}
		return doi
	default:
		slog.Debug("no doi conversion for scheme", "scheme", scheme, "id", id)
		return ""
	}
}

// ArXivDOI returns the DataCite DOI arXiv registers for a normalized arXiv id.
func ArXivDOI(arxiv string) string {
	return arxivDOIPrefix + strings.ReplaceAll(arxiv, ":", ".")
}

type idconvResponse struct {
	Records []struct {
		DOI    string `json:"doi"`
		ErrMsg string `json:"errmsg"`
	} `json:"records"`
}

func (r *Registry) pubmedDOI(ctx context.Context, id string) (string, error) {
	var doi string
	err := r.client.Cached(ctx, "idconv:"+id, &doi, func() error {
		data, err := r.client.GetBytes(ctx, r.endpoints.IDConv+"&ids="+url.QueryEscape(id), nil)
		if errors.Is(err, httpclient.ErrNotFound) {
			doi = ""
			return nil
		}
		if err != nil {
			return err
		}

		var resp idconvResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return &hub.InternalError{Op: "decode idconv response for " + id, Err: err}
		}
		doi = ""
		if len(resp.Records) > 0 {
			if msg := resp.Records[0].ErrMsg; msg != "" {
				slog.Debug("idconv returned an error", "id", id, "errmsg", msg)
			}
			doi = resp.Records[0].DOI
		}
		return nil
	})
	return doi, err
}
