package dashboard

import "context"

type SiteRefresher interface {
	RefreshSite(ctx context.Context, site string) error
}

// RefreshReport lists the sites refreshed before the run stopped. FailedSite
// and Err are set when a site failed.
type RefreshReport struct {
	Refreshed  []string
	FailedSite string
	Err        error
}

func (r RefreshReport) OK() bool {
	return r.Err == nil
}

// RefreshSites refreshes sites one at a time and stops at the first failure;
// later sites are not attempted. onRefreshed, if set, runs after each site
// that succeeds.
func RefreshSites(ctx context.Context, r SiteRefresher, sites []string, onRefreshed func(site string)) RefreshReport {
	var report RefreshReport
	for _, site := range sites {
		if err := ctx.Err(); err != nil {
			report.FailedSite = site
			report.Err = err
			return report
		}

		if err := r.RefreshSite(ctx, site); err != nil {
			report.FailedSite = site
			report.Err = err
			return report
		}

		report.Refreshed = append(report.Refreshed, site)
		if onRefreshed != nil {
			onRefreshed(site)
		}
	}
	return report
}
