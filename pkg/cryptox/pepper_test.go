package cryptox

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPepperConcurrent(t *testing.T) {
	const workers = 16

	peppers := make([]string, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			peppers[i] = GetPepper()
		}(i)
	}
	wg.Wait()

	// Every caller sees the exact same pepper, and it matches the file the
	// loader wrote, so hashes created during a concurrent startup always
	// verify after a restart.
	require.NotEmpty(t, peppers[0])
	for i := 1; i < workers; i++ {
		require.Equal(t, peppers[0], peppers[i])
	}

	onDisk, err := os.ReadFile(pepperFile)
	require.NoError(t, err)
	require.Equal(t, peppers[0], string(onDisk))
}
