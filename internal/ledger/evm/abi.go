package evm

// contractJSON is the fixed ABI of the deployed supply-chain contract. The
// contract itself is an external collaborator; this client consumes its
// surface as-is.
const contractJSON = `[
  {"type":"function","name":"getProductDetails","stateMutability":"view",
   "inputs":[{"name":"productId","type":"uint256"}],
   "outputs":[
     {"name":"product","type":"tuple","components":[
       {"name":"productId","type":"uint256"},{"name":"name","type":"string"},
       {"name":"productType","type":"string"},{"name":"description","type":"string"},
       {"name":"batchNo","type":"uint256"},{"name":"stage","type":"uint8"},
       {"name":"manufacturedDate","type":"uint256"},{"name":"expiryDate","type":"uint256"},
       {"name":"price","type":"uint256"}]},
     {"name":"batch","type":"tuple","components":[
       {"name":"batchId","type":"uint256"},{"name":"name","type":"string"},
       {"name":"description","type":"string"}]},
     {"name":"stages","type":"tuple[]","components":[
       {"name":"user","type":"tuple","components":[
         {"name":"wallet","type":"address"},{"name":"name","type":"string"},
         {"name":"place","type":"string"},{"name":"role","type":"uint8"},
         {"name":"status","type":"uint8"}]},
       {"name":"stage","type":"uint8"},{"name":"stageCount","type":"uint256"},
       {"name":"entryTime","type":"uint256"},{"name":"exitTime","type":"uint256"},
       {"name":"remark","type":"string"}]}]},
  {"type":"function","name":"getBatchDetails","stateMutability":"view",
   "inputs":[{"name":"batchNo","type":"uint256"}],
   "outputs":[{"name":"batch","type":"tuple","components":[
     {"name":"batchId","type":"uint256"},{"name":"name","type":"string"},
     {"name":"description","type":"string"}]}]},
  {"type":"function","name":"getProductsByUser","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"products","type":"tuple[]","components":[
     {"name":"productId","type":"uint256"},{"name":"name","type":"string"},
     {"name":"productType","type":"string"},{"name":"description","type":"string"},
     {"name":"batchNo","type":"uint256"},{"name":"stage","type":"uint8"},
     {"name":"manufacturedDate","type":"uint256"},{"name":"expiryDate","type":"uint256"},
     {"name":"price","type":"uint256"}]}]},
  {"type":"function","name":"getAllUsers","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"users","type":"tuple[]","components":[
     {"name":"wallet","type":"address"},{"name":"name","type":"string"},
     {"name":"place","type":"string"},{"name":"role","type":"uint8"},
     {"name":"status","type":"uint8"}]}]},
  {"type":"function","name":"addProduct","stateMutability":"nonpayable",
   "inputs":[
     {"name":"name","type":"string"},{"name":"productType","type":"string"},
     {"name":"description","type":"string"},{"name":"batchNo","type":"uint256"},
     {"name":"manufacturedDate","type":"uint256"},{"name":"expiryDate","type":"uint256"},
     {"name":"price","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"productCheckIn","stateMutability":"nonpayable",
   "inputs":[{"name":"productId","type":"uint256"},{"name":"stage","type":"uint8"},
     {"name":"remark","type":"string"}],"outputs":[]},
  {"type":"function","name":"productStageUpdate","stateMutability":"nonpayable",
   "inputs":[{"name":"productId","type":"uint256"},{"name":"stage","type":"uint8"},
     {"name":"remark","type":"string"}],"outputs":[]},
  {"type":"function","name":"createBatch","stateMutability":"nonpayable",
   "inputs":[{"name":"name","type":"string"},{"name":"description","type":"string"}],
   "outputs":[]},
  {"type":"function","name":"addUser","stateMutability":"nonpayable",
   "inputs":[{"name":"wallet","type":"address"},{"name":"name","type":"string"},
     {"name":"place","type":"string"},{"name":"role","type":"uint8"}],"outputs":[]},
  {"type":"function","name":"registerUser","stateMutability":"nonpayable",
   "inputs":[{"name":"name","type":"string"},{"name":"place","type":"string"},
     {"name":"role","type":"uint8"}],"outputs":[]},
  {"type":"function","name":"updateUserStatus","stateMutability":"nonpayable",
   "inputs":[{"name":"wallet","type":"address"},{"name":"status","type":"uint8"}],
   "outputs":[]},
  {"type":"event","name":"ProductAdded","anonymous":false,
   "inputs":[{"name":"productId","type":"uint256","indexed":false},
     {"name":"name","type":"string","indexed":false},
     {"name":"batchNo","type":"uint256","indexed":false}]},
  {"type":"event","name":"ProductStageUpdated","anonymous":false,
   "inputs":[{"name":"productId","type":"uint256","indexed":false},
     {"name":"stage","type":"uint8","indexed":false},
     {"name":"remark","type":"string","indexed":false}]},
  {"type":"event","name":"BatchCreated","anonymous":false,
   "inputs":[{"name":"batchId","type":"uint256","indexed":false},
     {"name":"name","type":"string","indexed":false}]},
  {"type":"event","name":"UserAdded","anonymous":false,
   "inputs":[{"name":"wallet","type":"address","indexed":false},
     {"name":"name","type":"string","indexed":false},
     {"name":"role","type":"uint8","indexed":false},
     {"name":"status","type":"uint8","indexed":false}]},
  {"type":"event","name":"UserRegistered","anonymous":false,
   "inputs":[{"name":"wallet","type":"address","indexed":false},
     {"name":"name","type":"string","indexed":false},
     {"name":"role","type":"uint8","indexed":false},
     {"name":"status","type":"uint8","indexed":false}]},
  {"type":"event","name":"UserStatusUpdated","anonymous":false,
   "inputs":[{"name":"wallet","type":"address","indexed":false},
     {"name":"oldStatus","type":"uint8","indexed":false},
     {"name":"newStatus","type":"uint8","indexed":false}]}
]`
