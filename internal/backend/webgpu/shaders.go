package webgpu

// matmulShader computes the full 32x16 tiles of C = A @ B.
// A is [M, K], B is [K, N], C is [M, N], all row-major f32.
//
// Workgroup (x, y) owns rows [32x, 32x+32) and columns [16y, 16y+16).
// 16x16 invocations each compute two rows of the tile, keeping the
// workgroup within the default 256-invocation limit. The dispatch grid is
// floor(M/32) x floor(N/16), so no bounds checks are needed and trailing
// partial tiles are left to the host.
const matmulShader = `
const TILE_M: u32 = 32u;
const TILE_N: u32 = 16u;
const ROWS_PER_INVOCATION: u32 = 2u;

@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> c: array<f32>;

struct Params {
    M: u32,  // rows of A and C
    K: u32,  // cols of A, rows of B
    N: u32,  // cols of B and C
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(workgroup_id) wg: vec3<u32>, @builtin(local_invocation_id) lid: vec3<u32>) {
    let col = wg.y * TILE_N + lid.y;

    for (var r: u32 = 0u; r < ROWS_PER_INVOCATION; r = r + 1u) {
        let row = wg.x * TILE_M + lid.x * ROWS_PER_INVOCATION + r;

        var sum: f32 = 0.0;
        for (var k: u32 = 0u; k < params.K; k = k + 1u) {
            sum = sum + a[row * params.K + k] * b[k * params.N + col];
        }
        c[row * params.N + col] = sum;
    }
}
`
