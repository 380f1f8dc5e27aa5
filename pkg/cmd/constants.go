package cmd

const (
	RootCmdName  = "carfinder"
	RootCmdShort = "Search a car catalog and keep a wishlist"
	RootCmdLong  = `carfinder fetches a car catalog from a JSON endpoint once per run,
filters, sorts and pages it, and keeps a persisted wishlist of saved cars.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Serve the car search HTTP API"
	ServeCmdLong  = `Start an HTTP server exposing /cars, /brands, /options, /wishlist,
/healthz and /metrics. The catalog is fetched in the background at startup.`

	SearchCmdName  = "search"
	SearchCmdShort = "Search the catalog once and print one page"

	WishlistCmdName  = "wishlist"
	WishlistCmdShort = "List or toggle saved cars"

	BrowseCmdName  = "browse"
	BrowseCmdShort = "Browse the catalog interactively"
	BrowseCmdLong  = `Read commands from standard input, one per line:

  search <text>   brand <name>   fuel <type>   seats <n>
  min <price>     max <price>    sort <none|price-low-high|price-high-low>
  clear           page <n>       next          prev
  save <id>       wishlist       help          quit

Changing any filter goes back to page 1. An empty argument clears a filter.`
)
