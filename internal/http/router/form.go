package router

// formPage is the minimal submission form served at the root. The real
// frontend posts directly to /check-vat; this page exists so the service is
// usable from a browser without any tooling.
const formPage = `<!DOCTYPE html>
<html>
<head>
    <title>VIES VAT Number Check</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: sans-serif; background: #f3f4f6; margin: 0; }
        .card { max-width: 420px; margin: 4rem auto; background: #fff; border-radius: 8px;
                box-shadow: 0 1px 3px rgba(0,0,0,.12); padding: 2rem; }
        h1 { font-size: 1.25rem; text-align: center; margin-top: 0; }
        label { display: block; font-size: .875rem; color: #374151; margin-bottom: .25rem; }
        input { width: 100%; box-sizing: border-box; padding: .5rem; margin-bottom: 1rem;
                border: 1px solid #d1d5db; border-radius: 6px; }
        button { width: 100%; padding: .6rem; border: 0; border-radius: 6px;
                 background: #2563eb; color: #fff; font-weight: 600; cursor: pointer; }
        button:hover { background: #1d4ed8; }
    </style>
</head>
<body>
    <div class="card">
        <h1>VIES VAT Number Check</h1>
        <form action="/check-vat" method="post">
            <label for="country_code">Country code</label>
            <input type="text" id="country_code" name="country_code" required maxlength="2" placeholder="e.g. PL">
            <label for="vat_number">VAT number</label>
            <input type="text" id="vat_number" name="vat_number" required placeholder="without country code">
            <button type="submit">Check</button>
        </form>
    </div>
</body>
</html>`
