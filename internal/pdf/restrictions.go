package pdf

// permissionBits maps the user access flags of an encryption dictionary's
// P entry to the operation they allow. Bit numbers are 1-based.
var permissionBits = []struct {
	bit  uint
	name string
}{
	{3, "print"},
	{4, "modify"},
	{5, "copy"},
	{6, "annotate"},
	{9, "fill_forms"},
	{10, "extract"},
	{11, "assemble"},
	{12, "print_high_quality"},
}

// deniedOperations lists the operations a P value withholds, in bit order.
func deniedOperations(p int32) []string {
	var denied []string
	for _, pb := range permissionBits {
		if p&(1<<(pb.bit-1)) == 0 {
			denied = append(denied, pb.name)
		}
	}
	return denied
}
