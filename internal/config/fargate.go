package config

import "slices"

// fargateMemory maps each Fargate CPU size to its allowed memory range in MiB.
// https://docs.aws.amazon.com/AmazonECS/latest/developerguide/fargate-tasks-services.html#fargate-tasks-size
var fargateMemory = map[int]struct {
	explicit []int
	min, max int
	step     int
}{
	256:   {explicit: []int{512, 1024, 2048}},
	512:   {min: 1024, max: 4096, step: 1024},
	1024:  {min: 2048, max: 8192, step: 1024},
	2048:  {min: 4096, max: 16384, step: 1024},
	4096:  {min: 8192, max: 30720, step: 1024},
	8192:  {min: 16384, max: 61440, step: 4096},
	16384: {min: 32768, max: 122880, step: 8192},
}

// ValidCPUs returns the supported Fargate CPU sizes in ascending order.
func ValidCPUs() []int {
	cpus := make([]int, 0, len(fargateMemory))
	for cpu := range fargateMemory {
		cpus = append(cpus, cpu)
	}
	slices.Sort(cpus)
	return cpus
}

// ValidMemoryForCPU returns the memory sizes (MiB) Fargate accepts for cpu.
// It returns nil for an unsupported CPU size.
func ValidMemoryForCPU(cpu int) []int {
	r, ok := fargateMemory[cpu]
	if !ok {
		return nil
	}
	if r.explicit != nil {
		return slices.Clone(r.explicit)
	}
	mem := make([]int, 0, (r.max-r.min)/r.step+1)
	for m := r.min; m <= r.max; m += r.step {
		mem = append(mem, m)
	}
	return mem
}

// IsValidFargateSize reports whether cpu and memory form a supported pairing.
func IsValidFargateSize(cpu, memoryMiB int) bool {
	return slices.Contains(ValidMemoryForCPU(cpu), memoryMiB)
}
