package ports

import "github.com/reglet-dev/nativevm/gas"

// GasStatus exposes the active gas schedule.
type GasStatus interface {
	CostTable() *gas.CostTable
}
