package gpuinfo

import "fmt"

// PCI vendor ids of common adapter vendors.
const (
	VendorAMD       uint32 = 0x1002
	VendorImgTec    uint32 = 0x1010
	VendorNVIDIA    uint32 = 0x10DE
	VendorARM       uint32 = 0x13B5
	VendorMicrosoft uint32 = 0x1414
	VendorQualcomm  uint32 = 0x5143
	VendorIntel     uint32 = 0x8086
	VendorApple     uint32 = 0x106B
	VendorMesa      uint32 = 0x10005
)

var vendorNames = map[uint32]string{
	VendorAMD:       "AMD",
	VendorImgTec:    "Imagination Technologies",
	VendorNVIDIA:    "NVIDIA",
	VendorARM:       "ARM",
	VendorMicrosoft: "Microsoft",
	VendorQualcomm:  "Qualcomm",
	VendorIntel:     "Intel",
	VendorApple:     "Apple",
	VendorMesa:      "Mesa",
}

// VendorName returns a display name for a vendor. The known-id table wins,
// then the backend-reported vendor string, then the hex id.
func VendorName(id uint32, native string) string {
	if name, ok := vendorNames[id]; ok {
		return name
	}
	if native != "" {
		return native
	}
	return fmt.Sprintf("Unknown (0x%04X)", id)
}
