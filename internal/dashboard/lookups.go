package dashboard

// AllValues disables a market, industry, organizer or site selection.
const AllValues = "all"

// Sites are the scraper modules the backend can refresh.
var Sites = []string{
	"aago_events", "abc_cfl_business", "abc_swfl_tampa", "bama",
	"boma_orl_events", "boma_tb", "cai_cf", "cai_suncoast", "cai_swfl",
	"ccc_orl", "ccim_orl", "cfhla", "coaa", "core_net", "crew_srq",
	"crew_swfl", "fgcar", "gcbx", "ifma_orl", "ifma_tb", "irem_tb", "macf",
	"naiop_orl", "naiop_tb", "reic", "reis", "sama", "smps_cf", "sorep",
	"swfaa_affiliate_event", "tbra", "uli_swfl",
}

var Markets = []string{"ORL", "SRQ", "SWFL", "TPA"}

var Industries = []string{
	"Affiliate",
	"Commercial Real Estate",
	"Community Associations",
	"Construction",
	"Facilities",
	"Hospitality",
	"Property Management",
	"Residential Real Estate",
}

var Organizers = []string{
	"AAGO", "ABC CFL", "ABC SWFL", "ABC TB", "BAMA", "BOMA ORL", "BOMA TB",
	"CAI CF", "CAI SUNCOAST", "CAI SWFL", "CCC ORL", "CCIM ORL", "CFHLA",
	"COAA", "CORENET", "CREW SRQ", "CREW SWFL", "FGCAR", "GCBX", "IFMA ORL",
	"IFMA TB", "IREM TB", "MACF", "NAIOP ORL", "NAIOP TB", "REIC", "REIS",
	"SAMA", "SMPS CF", "SOREP", "SWFAA", "TBRA", "ULI CF", "ULI SWFL", "ULI TB",
}

type Option struct {
	Value string
	Label string
}

var SortFields = []Option{
	{Value: "start_datetime", Label: "Start Date/Time"},
	{Value: "end_datetime", Label: "End Date/Time"},
	{Value: "organizer", Label: "Organizer"},
	{Value: "title", Label: "Title"},
	{Value: "industry", Label: "Industry"},
	{Value: "market", Label: "Market"},
	{Value: "attending", Label: "Attending"},
	{Value: "color", Label: "Color"},
}

var SortOrders = []Option{
	{Value: "asc", Label: "Ascending"},
	{Value: "desc", Label: "Descending"},
}

var TimeFilters = []Option{
	{Value: string(AllEvents), Label: "All Events"},
	{Value: string(UpcomingEvents), Label: "Upcoming Events"},
	{Value: string(PastEvents), Label: "Past Events"},
}

// SitesFor expands a refresh selection; "all" means every known site.
func SitesFor(choice string) []string {
	if choice == "" || choice == AllValues {
		return append([]string(nil), Sites...)
	}
	return []string{choice}
}

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
