package inventory

import "time"

// SetClock reemplaza el reloj del caso de uso en las pruebas.
func (uc *InventoryUseCase) SetClock(now func() time.Time) { uc.now = now }
