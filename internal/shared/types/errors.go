package types

import "errors"

var (
	ErrNoRecordsFound     = errors.New("no performance records found. Check the data source")
	ErrNoDataSource       = errors.New("no data source given. Use --data or set data_source in the config file")
	ErrUnsupportedSource  = errors.New("unsupported data source")
	ErrBrandRequired      = errors.New("brand code is required")
	ErrProductRequired    = errors.New("a product name is required for the drill-down")
	ErrViewNameRequired   = errors.New("a view name is required")
	ErrViewNotFound       = errors.New("saved view not found")
	ErrInvalidGroupBy     = errors.New("group-by must be campaign or goods")
	ErrInvalidTrendUnit   = errors.New("trend unit must be day, week or month")
	ErrInvalidDirection   = errors.New("direction must be asc or desc")
	ErrInvalidSortKey     = errors.New("unknown sort column")
	ErrStateNotConfigured = errors.New("no database configured for saved state")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD")
)
